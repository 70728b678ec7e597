// Command token issues an operator access token for the companion app.
//
//	go run ./cmd/token -id app-1 -name "Kuko app" -ttl 720h
package main

import (
	"KukoRobot/internal/entity"
	jwtPkg "KukoRobot/pkg/jwt"
	"KukoRobot/pkg/log"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	id := flag.String("id", "", "operator id")
	name := flag.String("name", "", "display name")
	role := flag.String("role", entity.RoleApp, "operator role (app or admin)")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	logger := log.NewLogger()
	_ = godotenv.Load()

	if *id == "" {
		logger.Fatal("-id is required")
	}

	token, expiresAt, err := jwtPkg.Sign(entity.Operator{ID: *id, Name: *name, Role: *role}, *ttl)
	if err != nil {
		logger.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
	logger.Infof("Token for %s expires at %s", *id, time.Unix(expiresAt, 0).Format(time.RFC3339))
}
