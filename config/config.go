package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"warung-site/internal/domain"
	"warung-site/internal/store"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"

	mongoCollection = "kv_store"
)

// Settings is the environment shared by every service binary. Each service
// reads only the fields it needs.
type Settings struct {
	StoreBackend   string `env:"STORE_BACKEND" envDefault:"redis"`
	StoreNamespace string `env:"STORE_NAMESPACE" envDefault:"warung"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"warung"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`

	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"warung"`

	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort string `env:"REDIS_PORT" envDefault:"6379"`

	KafkaBroker string `env:"KAFKA_BROKER" envDefault:"localhost:9092"`
	EventsTopic string `env:"EVENTS_TOPIC" envDefault:"restaurant-events"`
	NotifyGroup string `env:"NOTIFY_GROUP" envDefault:"notify-svc"`

	FeePolicy        string        `env:"FEE_POLICY" envDefault:"subtotal_only"`
	CapacityTotal    int           `env:"CAPACITY_TOTAL" envDefault:"50"`
	CapacityOccupied int           `env:"CAPACITY_OCCUPIED" envDefault:"35"`
	ReservationDelay time.Duration `env:"RESERVATION_DELAY" envDefault:"2s"`
	ContactDelay     time.Duration `env:"CONTACT_DELAY" envDefault:"1500ms"`
	PaymentWindow    time.Duration `env:"PAYMENT_WINDOW" envDefault:"15m"`
	PaymentBaseURL   string        `env:"PAYMENT_BASE_URL" envDefault:"http://localhost:8080"`

	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"8h"`
	SessionSecret     string        `env:"SESSION_SECRET" envDefault:"change-me"`
	AdminUsername     string        `env:"ADMIN_USERNAME" envDefault:"gemoy"`
	AdminPassword     string        `env:"ADMIN_PASSWORD" envDefault:"gemoy123"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`

	StorefrontURL string `env:"STOREFRONT_SVC_URL" envDefault:"http://localhost:8081"`
	PaymentURL    string `env:"PAYMENT_SVC_URL" envDefault:"http://localhost:8082"`
	AdminURL      string `env:"ADMIN_SVC_URL" envDefault:"http://localhost:8083"`
	NotifyURL     string `env:"NOTIFY_SVC_URL" envDefault:"http://localhost:8084"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"./public"`

	Port string `env:"PORT"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: could not read .env: %v", err)
	}

	var settings Settings
	if err := env.Parse(&settings); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return settings, nil
}

func MustLoad() Settings {
	settings, err := Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	return settings
}

// PortOr returns the configured PORT or the service default.
func (s Settings) PortOr(def string) string {
	if s.Port == "" {
		return def
	}
	return s.Port
}

func (s Settings) CapacityBaseline() domain.Capacity {
	return domain.Capacity{Total: s.CapacityTotal, Occupied: s.CapacityOccupied}
}

func (s Settings) PostgresDSN() string {
	return "host=" + s.DBHost + " port=" + s.DBPort + " user=" + s.DBUser +
		" password=" + s.DBPassword + " dbname=" + s.DBName + " sslmode=disable"
}

func (s Settings) RedisAddr() string {
	return s.RedisHost + ":" + s.RedisPort
}

func MustInitPostgres(s Settings) *sql.DB {
	db, err := sql.Open("postgres", s.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(s Settings) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: s.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func MustInitMongo(s Settings) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	return client.Database(s.MongoDatabase)
}

// MustInitBackend opens the durable shared store selected by STORE_BACKEND.
// rdb is always required: session scope and payment countdowns live in Redis.
func MustInitBackend(s Settings, rdb *redis.Client) store.Backend {
	switch s.StoreBackend {
	case BackendPostgres:
		backend := store.NewPostgresBackend(MustInitPostgres(s), s.StoreNamespace)
		if err := backend.EnsureSchema(context.Background()); err != nil {
			log.Fatal("Failed to prepare kv_store:", err)
		}
		return backend
	case BackendMongo:
		return store.NewMongoBackend(MustInitMongo(s).Collection(mongoCollection), s.StoreNamespace)
	case BackendRedis, "":
		return store.NewRedisBackend(rdb, s.StoreNamespace)
	default:
		log.Fatalf("Unknown STORE_BACKEND %q", s.StoreBackend)
		return nil
	}
}

func NewKafkaReader(s Settings, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{s.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(s Settings, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(s.KafkaBroker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
