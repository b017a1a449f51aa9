package config

type CookieConfig struct {
	Name       string `yaml:"name"`
	AgeSeconds int    `yaml:"ageSeconds"`
	Secure     bool   `yaml:"secure"`
}

type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

type RedisConfig struct {
	Host      string `yaml:"host"`
	Port      int32  `yaml:"port"`
	Password  string `yaml:"password"`
	Db        int    `yaml:"db"`
	KeyPrefix string `yaml:"keyPrefix"`
}

type StoreConfig struct {
	Type  StoreType   `yaml:"type"`
	Redis RedisConfig `yaml:"redis"`
}

type SessionConfig struct {
	Cookie CookieConfig `yaml:"cookie"`
	Store  StoreConfig  `yaml:"store"`
}

type ServerConfig struct {
	Port int32 `yaml:"port"`
}

type OidcConfig struct {
	ClientId          string              `yaml:"clientId"`
	ClientSecret      string              `yaml:"clientSecret"`
	MetadataUrl       string              `yaml:"metadataUrl"`
	Metadata          *AuthServerMetadata `yaml:"metadata"`
	EndpiontMountBase *string             `yaml:"endpointMountBase"`
	CallbackPath      *string             `yaml:"callbackPath"`
	SignOutPath       *string             `yaml:"signOutPath"`
	SessionPath       *string             `yaml:"sessionPath"`
	InfoPath          *string             `yaml:"infoPath"`
	Scopes            []string            `yaml:"scopes"`
}

type GoidcConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Oidc    OidcConfig    `yaml:"oidc"`
}
