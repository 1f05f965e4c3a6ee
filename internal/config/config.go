package config

import (
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/gallerynet/settlement-engine/internal/log"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool
	LogPath string

	ApiPort    string
	HealthPort string

	EnginePrincipal string
	EscrowAccount   string
	FeeBeneficiary  string
	DefaultFeeBps   uint64
	AdminPrincipals []string

	RequireRegisteredAssets bool

	Registry      RegistryConfig
	ElasticSearch ElasticSearchConfig
	Amqp          AmqpConfig
	Aws           AwsConfig
}

type RegistryConfig struct {
	Url     string
	Timeout int
	Debug   bool
}

type AmqpConfig struct {
	Uri string
}

type AwsConfig struct {
	AccessKey string
	SecretKey string
	Region    string
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

func Init() {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger()
}

func initLogger() {
	log.NewLogger(Get().LogPath, Get().Debug)
}

func Get() *Config {
	return &Config{
		Env:             getString("ENV", ""),
		Network:         getString("NETWORK", "mainnet"),
		Index:           getString("INDEX_NAME", "settlement"),
		Debug:           getBool("DEBUG", false),
		LogPath:         getString("LOG_PATH", "./var/settlement.log"),
		ApiPort:         getString("API_PORT", "8080"),
		HealthPort:      getString("HEALTH_PORT", "8081"),
		EnginePrincipal: getString("ENGINE_PRINCIPAL", "trade-engine"),
		EscrowAccount:   getString("ESCROW_ACCOUNT", "auction-escrow"),
		FeeBeneficiary:  getString("FEE_BENEFICIARY", "marketplace-treasury"),
		DefaultFeeBps:   getUint64("DEFAULT_FEE_BPS", 250),
		AdminPrincipals: getSlice("ADMIN_PRINCIPALS", []string{"admin"}, ","),

		RequireRegisteredAssets: getBool("REQUIRE_REGISTERED_ASSETS", false),

		Registry: RegistryConfig{
			Url:     getString("REGISTRY_URL", ""),
			Timeout: getInt("REGISTRY_TIMEOUT", 10),
			Debug:   getBool("REGISTRY_DEBUG", false),
		},
		Amqp: AmqpConfig{
			Uri: getString("AMQP_URI", ""),
		},
		Aws: AwsConfig{
			AccessKey: getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getString("AWS_SECRET_KEY_ID", ""),
			Region:    getString("AWS_REGION", ""),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "./mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getUint64(key string, defaultValue uint) uint64 {
	return uint64(getInt(key, int(defaultValue)))
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
