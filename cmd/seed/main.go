package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"tria-ai-be/internal/constant"
	"tria-ai-be/internal/model"
	"tria-ai-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Seeds a demo account with one triple chat so the frontend has something to
// render on a fresh database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	email := "demo@tria.ai"

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("%s Demo user already exists, skipping seed", yellow("SKIP"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash password:", err)
	}
	hashStr := string(hash)
	displayName := "Demo User"

	user := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: &hashStr,
		DisplayName:  &displayName,
		Timezone:     "UTC",
		Language:     "en",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Error: Failed to create user:", err)
	}
	log.Printf("%s Created user %s", green("OK"), email)

	settings, _ := json.Marshal(map[string]interface{}{"notifications": true})
	prefs := model.UserPreferences{
		Id:       uuid.New(),
		UserId:   user.Id,
		Theme:    "dark",
		Settings: datatypes.JSON(settings),
	}
	if err := db.Create(&prefs).Error; err != nil {
		log.Fatal("Error: Failed to create preferences:", err)
	}

	now := time.Now()
	conversation := model.Conversation{
		Id:            uuid.New(),
		UserId:        user.Id,
		Title:         "Getting started",
		ChatType:      constant.ChatTypeTriple,
		Status:        constant.ConversationStatusActive,
		LastMessageAt: now,
	}
	if err := db.Create(&conversation).Error; err != nil {
		log.Fatal("Error: Failed to create conversation:", err)
	}

	analytics := model.ConversationAnalytics{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		LastActivity:   now,
	}
	if err := db.Create(&analytics).Error; err != nil {
		log.Fatal("Error: Failed to create analytics row:", err)
	}

	seedMessages := []model.Message{
		{
			Id:             uuid.New(),
			ConversationId: conversation.Id,
			UserId:         &user.Id,
			Sender:         constant.SenderUser,
			Content:        "Hey, who are you two?",
			WordCount:      5,
			CreatedAt:      now.Add(-2 * time.Minute),
		},
		{
			Id:             uuid.New(),
			ConversationId: conversation.Id,
			Sender:         constant.SenderRam,
			Content:        "Hi! I'm Ram, here to give you solid answers and keep things fun.",
			WordCount:      13,
			CreatedAt:      now.Add(-1 * time.Minute),
		},
		{
			Id:             uuid.New(),
			ConversationId: conversation.Id,
			Sender:         constant.SenderLaxman,
			Content:        "And I'm Laxman! Same perfect answers, but with better jokes than Ram.",
			WordCount:      12,
			CreatedAt:      now,
		},
	}
	for _, m := range seedMessages {
		if err := db.Create(&m).Error; err != nil {
			log.Fatal("Error: Failed to create message:", err)
		}
	}

	if err := db.Model(&model.Conversation{}).
		Where("id = ?", conversation.Id).
		Update("message_count", len(seedMessages)).Error; err != nil {
		log.Fatal("Error: Failed to update message count:", err)
	}

	log.Printf("%s Seeded conversation %q with %d messages", green("OK"), conversation.Title, len(seedMessages))
	log.Printf("%s Login with %s / demo-password", green("DONE"), email)
}
