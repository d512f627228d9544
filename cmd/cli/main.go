package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/pinky890114/Xianluo/internal/catalog"
	"github.com/pinky890114/Xianluo/internal/store"
)

func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	username := addUserCmd.String("username", "", "Username for the new admin")
	password := addUserCmd.String("password", "", "Password for the new admin")
	scope := addUserCmd.String("scope", "general", "Storefront this admin manages (nocy or general)")

	checkCatalogCmd := flag.NewFlagSet("check-catalog", flag.ExitOnError)
	catalogPath := checkCatalogCmd.String("path", "./catalog.yaml", "Catalog file to validate")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-user' or 'check-catalog' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			fmt.Println("username and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		if *scope != "nocy" && *scope != "general" {
			fmt.Println("scope must be 'nocy' or 'general'")
			os.Exit(1)
		}
		createUser(*username, *password, *scope)
	case "check-catalog":
		checkCatalogCmd.Parse(os.Args[2:])
		checkCatalog(*catalogPath)
	default:
		fmt.Println("expected 'add-user' or 'check-catalog' subcommand")
		os.Exit(1)
	}
}

func createUser(username, password, scope string) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./xianluo.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running cli before server
	if err := db.Migrate("migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.CreateUser(username, string(hashedPassword), scope); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Admin '%s' created for the '%s' storefront.\n", username, scope)
}

func checkCatalog(path string) {
	c, err := catalog.Load(path)
	if err != nil {
		log.Fatalf("Catalog invalid: %v", err)
	}
	total := 0
	for _, cat := range c.Categories() {
		total += len(c.Products(cat))
	}
	fmt.Printf("Catalog OK: %d categories, %d products.\n", len(c.Categories()), total)
}
