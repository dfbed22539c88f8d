package telegram

import (
	"fmt"
	"log"
	"os"
	"strings"

	"glamapi/agent"
	"glamapi/models"
	"glamapi/stylist"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"
)

func EscapeMessage(message string) string {
	r := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return r.Replace(message)
}

// chat session, one per telegram chat. The bot is a thin surface over the
// same agent the API chat endpoint uses.
type botSession struct {
	userID uint
	ctx    agent.Context
}

func snapshotWardrobe(db *gorm.DB, userID uint) []stylist.Item {
	var items []models.ClothingItem
	db.Where("owner_id = ?", userID).Find(&items)
	snapshot := make([]stylist.Item, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, stylist.Item{
			ID:        item.ID,
			Name:      item.Name,
			Category:  item.Category,
			Color:     item.Color,
			Season:    item.Season,
			Tags:      item.TagList(),
			TimesWorn: item.TimesWorn,
		})
	}
	return snapshot
}

func formatResponse(response agent.Response) string {
	out := strings.Builder{}
	out.WriteString(EscapeMessage(response.Content))
	for i, outfit := range response.Outfits {
		names := make([]string, 0, len(outfit.Items))
		for _, item := range outfit.Items {
			names = append(names, item.Name)
		}
		out.WriteString(fmt.Sprintf("\n\n*Outfit %v:* %s", i+1, EscapeMessage(strings.Join(names, " + "))))
		out.WriteString(fmt.Sprintf("\n_%s_", EscapeMessage(outfit.Explanation)))
	}
	return out.String()
}

func RunStylistBot(db *gorm.DB) {

	bot, err := tgbotapi.NewBotAPI(os.Getenv("TG_TOKEN"))
	if err != nil {
		println("Error tg bot init")
		log.Panic(err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)
	sessions := map[int64]*botSession{}

	for update := range updates {
		if update.Message == nil {
			continue
		}
		chatID := update.Message.Chat.ID
		log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)

		session, ok := sessions[chatID]
		if !ok {
			session = &botSession{}
			sessions[chatID] = session
		}

		if update.Message.Command() == "start" {
			msg := tgbotapi.NewMessage(chatID, "Hi! I'm your wardrobe stylist. Link your account with `/link your@email.com`, then ask me for outfits.")
			msg.ParseMode = "markdown"
			bot.Send(msg)
			continue
		}
		if update.Message.Command() == "link" {
			email := strings.TrimSpace(update.Message.CommandArguments())
			var user models.UserAccount
			r := db.Where("email = ?", email).Limit(1).Find(&user)
			if r.RowsAffected == 0 {
				bot.Send(tgbotapi.NewMessage(chatID, "No account found for that email."))
				continue
			}
			session.userID = user.ID
			session.ctx = agent.Context{}
			bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Linked to %s. Ask me for an outfit!", user.Name)))
			continue
		}

		if session.userID == 0 {
			msg := tgbotapi.NewMessage(chatID, "Link your account first with `/link your@email.com`")
			msg.ParseMode = "markdown"
			bot.Send(msg)
			continue
		}

		session.ctx.Wardrobe = snapshotWardrobe(db, session.userID)
		response := agent.ProcessMessage(update.Message.Text, &session.ctx)

		msg := tgbotapi.NewMessage(chatID, formatResponse(response))
		msg.ReplyToMessageID = update.Message.MessageID
		msg.ParseMode = "markdown"
		if _, err := bot.Send(msg); err != nil {
			log.Println(err.Error())
		}
	}
}
