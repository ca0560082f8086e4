// Command apikey provisions or rotates the shared access key from the
// command line. Without an argument it generates a random key and prints it.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"vertical/backend/internal/db"
	"vertical/backend/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	key := flag.String("key", "", "access key to store; generated when empty")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	value := *key
	if value == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("generate key: %v", err)
		}
		value = hex.EncodeToString(buf)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	repo := repository.New(pool)
	if err := repo.SetAPIKey(ctx, value); err != nil {
		log.Fatalf("store key: %v", err)
	}
	fmt.Println(value)
}
