// Seeder populates a development database with fake users, friendships and
// message history. Not intended for production use.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"penpal/config"
	"penpal/database"
	"penpal/store"
)

func main() {
	userCount := flag.Int("users", 20, "number of users to create")
	messageCount := flag.Int("messages", 5, "messages per friendship")
	flag.Parse()

	cfg := config.Load()

	db, err := database.Connect(cfg.MysqlDSN)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		logrus.WithError(err).Fatal("failed to create tables")
	}

	users := store.NewUserStore(db)
	friends := store.NewFriendStore(db, users)
	messages := store.NewMessageStore(db, users, friends)

	ctx := context.Background()

	// MinCost keeps seeding fast; these are throwaway credentials.
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash seed password")
	}

	ids := make([]string, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user, err := users.Create(ctx, username, string(hash))
		if err != nil {
			logrus.WithError(err).WithField("username", username).Warn("skipping user")
			continue
		}
		ids = append(ids, user.ID)
	}
	logrus.WithField("count", len(ids)).Info("users created")

	var friendships int
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if !gofakeit.Bool() {
				continue
			}
			if err := friends.SendRequest(ctx, ids[i], ids[j]); err != nil {
				continue
			}
			if err := friends.AcceptRequest(ctx, ids[j], ids[i]); err != nil {
				continue
			}
			friendships++

			for k := 0; k < *messageCount; k++ {
				sender, receiver := ids[i], ids[j]
				if gofakeit.Bool() {
					sender, receiver = receiver, sender
				}
				if _, err := messages.Send(ctx, sender, receiver, gofakeit.SentenceSimple()); err != nil {
					logrus.WithError(err).Warn("failed to seed message")
				}
			}
		}
	}
	logrus.WithField("count", friendships).Info("friendships created")
}
