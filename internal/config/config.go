package config

import "github.com/caarlos0/env/v10"

// Configはアプリ全体の設定。環境変数から読み込む。
type Config struct {
	HTTP     HTTPServer
	Postgres Postgres `envPrefix:"POSTGRES_"`

	JWTSecret string `env:"JWT_SECRET,required"`

	// 決済後に購入者を戻すフロント側URL（カートページのベース）
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	// back_urls組み立てに使う自サービスの外向きURL
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	MercadoPago MercadoPago `envPrefix:"MP_"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Postgres struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	DB       string `env:"DB" envDefault:"storefront"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// AccessTokenが空＝未設定。起動は止めず、チェックアウト時にエラーで返す。
type MercadoPago struct {
	BaseAPIURL  string `env:"BASE_API_URL" envDefault:"https://api.mercadopago.com"`
	AccessToken string `env:"ACCESS_TOKEN"`
	CurrencyID  string `env:"CURRENCY_ID" envDefault:"COP"`
}

func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
