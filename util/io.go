package util

import (
	"encoding/json"
	"errors"
	"os"
)

//*******************************************
// json file io
//*******************************************

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return value, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}
