package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/iqbalbaharum/predictr-client/internal/arch"
)

// Wallet provider selection, picked explicitly at startup.
const (
	WalletProviderUnisat = "unisat"
	WalletProviderLocal  = "local"
)

var (
	RpcHttpUrl string

	ProgramPubkey      arch.Pubkey
	EventAccountPubkey arch.Pubkey
	TokenAccountPubkey arch.Pubkey

	RedisAddr     string
	RedisPassword string

	MySqlDsn    string
	MySqlDbName string

	WalletProvider   string
	WalletBridgeUrl  string
	WalletPrivateKey string

	PollInterval time.Duration
	Port         int
)

func InitEnv() error {
	// A missing .env file is fine in deployed environments.
	_ = godotenv.Load()

	RpcHttpUrl = getEnv("RPC_HTTP_URL", "http://localhost:9002")

	var err error
	if ProgramPubkey, err = arch.PubkeyFromHex(os.Getenv("PROGRAM_PUBKEY")); err != nil {
		return fmt.Errorf("PROGRAM_PUBKEY: %w", err)
	}
	if EventAccountPubkey, err = arch.PubkeyFromHex(os.Getenv("EVENT_ACCOUNT_PUBKEY")); err != nil {
		return fmt.Errorf("EVENT_ACCOUNT_PUBKEY: %w", err)
	}
	if TokenAccountPubkey, err = arch.PubkeyFromHex(os.Getenv("TOKEN_ACCOUNT_PUBKEY")); err != nil {
		return fmt.Errorf("TOKEN_ACCOUNT_PUBKEY: %w", err)
	}

	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisPassword = os.Getenv("REDIS_PASSWORD")

	MySqlDsn = os.Getenv("MYSQL_DSN")
	MySqlDbName = getEnv("MYSQL_DBNAME", "predictr")

	WalletProvider = getEnv("WALLET_PROVIDER", WalletProviderLocal)
	WalletBridgeUrl = os.Getenv("WALLET_BRIDGE_URL")
	WalletPrivateKey = os.Getenv("WALLET_PRIVATE_KEY")

	switch WalletProvider {
	case WalletProviderUnisat:
		if WalletBridgeUrl == "" {
			return fmt.Errorf("WALLET_BRIDGE_URL is required for the %s provider", WalletProviderUnisat)
		}
	case WalletProviderLocal:
		if WalletPrivateKey == "" {
			return fmt.Errorf("WALLET_PRIVATE_KEY is required for the %s provider", WalletProviderLocal)
		}
	default:
		return fmt.Errorf("unknown wallet provider %q", WalletProvider)
	}

	seconds, err := strconv.Atoi(getEnv("POLL_INTERVAL_SECONDS", "15"))
	if err != nil || seconds <= 0 {
		return fmt.Errorf("invalid POLL_INTERVAL_SECONDS: %q", os.Getenv("POLL_INTERVAL_SECONDS"))
	}
	PollInterval = time.Duration(seconds) * time.Second

	if Port, err = strconv.Atoi(getEnv("PORT", "5000")); err != nil {
		return fmt.Errorf("invalid PORT: %q", os.Getenv("PORT"))
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
