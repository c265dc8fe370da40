package db

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/config"
)

var (
	DB    *gorm.DB
	SQL   *sql.DB
	Mongo *mongo.Database
	Redis *redis.Client
)

func ConnectDB() {
	connectPostgres()
	connectMongo()
	connectRedis()
}

func connectPostgres() {
	var err error
	DB, err = gorm.Open(postgres.Open(config.Env.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}

	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp:", err)
	}

	// The unique indexes declared on these models are load-bearing: the
	// duplicate-application and duplicate-profile guards resolve at the
	// constraint, not in application code.
	if err := DB.AutoMigrate(
		&model.Role{},
		&model.Permission{},
		&model.User{},
		&model.BlacklistedToken{},
		&model.Applicant{},
		&model.ApplicantDocument{},
		&model.Sponsor{},
		&model.Award{},
		&model.Application{},
	); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	SQL, err = DB.DB()
	if err != nil {
		log.Fatal("Failed to unwrap sql.DB:", err)
	}

	log.Println("Connected to PostgreSQL successfully")
}

func connectMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.Env.MongoURI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	Mongo = client.Database(config.Env.MongoDB)

	log.Println("Connected to MongoDB successfully")
}

func connectRedis() {
	Redis = redis.NewClient(&redis.Options{Addr: config.Env.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Println("Warning: redis unreachable, caching disabled:", err)
		Redis = nil
		return
	}

	log.Println("Connected to Redis successfully")
}

func GetSQL() *sql.DB {
	return SQL
}

func GetMongo() *mongo.Database {
	return Mongo
}

func GetRedis() *redis.Client {
	return Redis
}
