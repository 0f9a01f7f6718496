package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	MongoURI                string
	DBName                  string
	FirebaseCredentialsPath string
	ImageKitPublicKey       string
	ImageKitPrivateKey      string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "3000"),
		Env:                     getEnv("ENV", "development"),
		MongoURI:                getEnv("MONGO_URI", ""),
		DBName:                  getEnv("DB_NAME", "inkpot"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		ImageKitPublicKey:       getEnv("IMAGEKIT_PUBLIC_KEY", ""),
		ImageKitPrivateKey:      getEnv("IMAGEKIT_PRIVATE_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
