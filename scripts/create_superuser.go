package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/dferrazm/gin-recipe-api/internal/config"
	"github.com/dferrazm/gin-recipe-api/internal/database"
	"github.com/dferrazm/gin-recipe-api/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "Superuser email (required)")
	password := flag.String("password", "", "Superuser password (required, min 5 characters)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}
	if len(*password) < 5 {
		log.Fatal("Password must be at least 5 characters")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	db, err := database.InitDatabase(conf.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate schema: ", err)
	}

	user, err := services.NewUserService(db).CreateSuperuser(*email, *password)
	if err != nil {
		log.Fatal("Failed to create superuser: ", err)
	}

	fmt.Printf("Superuser created!\n")
	fmt.Printf("Email: %s (ID: %d)\n", user.Email, user.ID)
}
