package bootstrap

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/koscheiundead/totkaa-v2/internal/config"
	"github.com/koscheiundead/totkaa-v2/internal/utils"
)

// EnsureAPIKey fills cfg.APIKey when API_KEY is unset. The key is read from
// the key file in the data directory, or generated and written there on
// first start so that clients on the same machine can pick it up.
func EnsureAPIKey(cfg *config.Config) error {
	return ensureAPIKey(cfg, rand.Reader)
}

func ensureAPIKey(cfg *config.Config, random io.Reader) error {
	if cfg.APIKey != "" {
		return nil
	}
	path := filepath.Join(cfg.DataDir, APIKeyFileName)

	data, err := utils.ReadFile(path)
	if err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			cfg.APIKey = key
			slog.Info(LogMsgAPIKeyLoaded, "path", path)
			return nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", ErrMsgReadAPIKey, err)
	}

	raw := make([]byte, APIKeyBytes)
	if _, err := io.ReadFull(random, raw); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgGenerateAPIKey, err)
	}
	key := hex.EncodeToString(raw)

	if err := os.MkdirAll(cfg.DataDir, DirPermission); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteAPIKey, err)
	}
	if err := utils.WriteFileAtomic(path, []byte(key+"\n"), APIKeyFilePermission); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteAPIKey, err)
	}

	cfg.APIKey = key
	slog.Info(LogMsgAPIKeyGenerated, "path", path)
	return nil
}
