package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// GetAbsPath expands a leading ~ to the home directory and cleans absolute paths
func GetAbsPath(path string) string {
	result := path
	if filepath.IsAbs(path) {
		result, _ = filepath.Abs(path)
	} else if strings.HasPrefix(path, "~") {
		homedir, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Msg("Couldn't determine the home directory")
		}
		result = strings.Replace(path, "~", homedir, 1)
	}
	return result
}

func FolderExists(path string) error {
	folder, err := os.Open(path)
	if err != nil {
		return err
	}
	defer folder.Close()
	folderInfo, err := folder.Stat()
	if err != nil {
		return err
	}
	if !folderInfo.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}

// ValidateExistingFolder creates the folder when it is missing
func ValidateExistingFolder(path string) error {
	err := FolderExists(path)
	if err != nil && os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}
	return err
}
