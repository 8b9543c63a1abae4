package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Model asset name constants to avoid typos and ensure consistency.
const (
	// FaceCascade is the binary pixel-intensity cascade for frontal faces.
	FaceCascade = "facefinder"

	// ObjectDetection is the pretrained general object-detection model.
	ObjectDetection = "yolov8n.onnx"
)

// Model type categories for the organized directory structure.
const (
	TypeFace   = "face"
	TypeObject = "object"
)

// DefaultModelsDir is the models directory relative to the project root.
const DefaultModelsDir = "models"

// EnvModelsDir overrides the models directory when set.
const EnvModelsDir = "ROTATEFIX_MODELS_DIR"

// findProjectRoot finds the project root by looking for go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.New("could not find project root (go.mod not found)")
}

// GetModelsDir returns the models directory path.
// Priority: 1. Explicit modelsDir parameter, 2. Environment variable,
// 3. Project root + default.
func GetModelsDir(modelsDir string) string {
	if modelsDir != "" {
		return modelsDir
	}

	if envDir := os.Getenv(EnvModelsDir); envDir != "" {
		return envDir
	}

	if projectRoot, err := findProjectRoot(); err == nil {
		return filepath.Join(projectRoot, DefaultModelsDir)
	}

	return DefaultModelsDir
}

// ResolveModelPath resolves a model filename to its full path. The organized
// layout (models/<type>/<file>) is preferred; a flat layout (models/<file>)
// is accepted for hand-assembled model directories.
func ResolveModelPath(modelsDir, modelType, filename string) string {
	baseDir := GetModelsDir(modelsDir)

	if modelType != "" {
		organized := filepath.Join(baseDir, modelType, filename)
		if _, err := os.Stat(organized); err == nil {
			return organized
		}
	}

	return filepath.Join(baseDir, filename)
}

// GetFaceCascadePath returns the path to the face cascade binary.
func GetFaceCascadePath(modelsDir string) string {
	return ResolveModelPath(modelsDir, TypeFace, FaceCascade)
}

// GetObjectModelPath returns the path to the object-detection model.
func GetObjectModelPath(modelsDir string) string {
	return ResolveModelPath(modelsDir, TypeObject, ObjectDetection)
}

// ValidateModelFile checks that a model file exists and is not a directory.
func ValidateModelFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("model file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("model path is a directory: %s", path)
	}
	return nil
}
