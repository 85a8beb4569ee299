package file

import (
	"os"
)

// GetContent reads a file into a string.
func GetContent(path string) (string, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(f), nil
}

// CheckFileIsExist reports whether a path exists on disk.
func CheckFileIsExist(filename string) bool {
	var exist = true
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		exist = false
	}
	return exist
}
