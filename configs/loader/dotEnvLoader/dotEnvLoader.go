package dotEnvLoader

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type DotEnvLoader struct{}

// Load читає .env, якщо він є, і накладає зверху змінні процесу.
func (DotEnvLoader) Load() (map[string]string, error) {
	envs, err := godotenv.Read()
	if err != nil {
		envs = make(map[string]string)
	}
	for _, pair := range os.Environ() {
		key, value, found := strings.Cut(pair, "=")
		if found {
			envs[key] = value
		}
	}
	return envs, nil
}
