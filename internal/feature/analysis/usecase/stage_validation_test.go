package usecase

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"fridge_backend/internal/feature/analysis/domain/entity"
)

// encodeTestImage は指定サイズのJPEG画像バイト列を生成します。
func encodeTestImage(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		t.Fatalf("テスト画像の生成に失敗: %v", err)
	}
	return buf.Bytes()
}

// TestValidationStage_ValidImageData は正常な画像データが検証を通過することを検証します。
func TestValidationStage_ValidImageData(t *testing.T) {
	t.Parallel()

	s := NewValidationStage()
	st := entity.NewAnalysisState("", encodeTestImage(t, 640, 480), "standard")

	if err := s.Run(context.Background(), st); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st.CurrentStage != "image_validated" {
		t.Errorf("CurrentStage = %q, want %q", st.CurrentStage, "image_validated")
	}
}

// TestValidationStage_MissingInput は画像もパスもない場合に致命的エラーとなることを検証します。
func TestValidationStage_MissingInput(t *testing.T) {
	t.Parallel()

	s := NewValidationStage()
	st := entity.NewAnalysisState("", nil, "standard")

	err := s.Run(context.Background(), st)
	if err == nil {
		t.Fatal("Run() error = nil, want error")
	}
	if !IsFatal(err) {
		t.Errorf("IsFatal = false, want true: %v", err)
	}
}

// TestValidationStage_CorruptData は画像としてデコードできないデータで致命的エラーとなることを検証します。
func TestValidationStage_CorruptData(t *testing.T) {
	t.Parallel()

	s := NewValidationStage()
	st := entity.NewAnalysisState("", []byte("this is not an image"), "standard")

	err := s.Run(context.Background(), st)
	if err == nil || !IsFatal(err) {
		t.Fatalf("Run() error = %v, want 致命的エラー", err)
	}
	if !strings.Contains(err.Error(), "corrupt") {
		t.Errorf("error = %v, 破損メッセージを含むべき", err)
	}
}

// TestValidationStage_OversizedData は最大サイズ超過で致命的エラーとなることを検証します。
func TestValidationStage_OversizedData(t *testing.T) {
	t.Parallel()

	s := NewValidationStage()
	st := entity.NewAnalysisState("", make([]byte, MaxImageSize+1), "standard")

	err := s.Run(context.Background(), st)
	if err == nil || !IsFatal(err) {
		t.Fatalf("Run() error = %v, want 致命的エラー", err)
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error = %v", err)
	}
}

// TestValidationStage_ImagePath はファイルパス入力が読み込まれ検証されることを検証します。
func TestValidationStage_ImagePath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fridge.jpg")
	if err := os.WriteFile(path, encodeTestImage(t, 320, 240), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewValidationStage()
	st := entity.NewAnalysisState(path, nil, "standard")

	if err := s.Run(context.Background(), st); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(st.ImageData) == 0 {
		t.Error("ImageDataが読み込まれていない")
	}
}

// TestValidationStage_UnsupportedExtension は未対応の拡張子で致命的エラーとなることを検証します。
func TestValidationStage_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	s := NewValidationStage()
	st := entity.NewAnalysisState("/tmp/fridge.gif", nil, "standard")

	err := s.Run(context.Background(), st)
	if err == nil || !IsFatal(err) {
		t.Fatalf("Run() error = %v, want 致命的エラー", err)
	}
	if !strings.Contains(err.Error(), "unsupported image format") {
		t.Errorf("error = %v", err)
	}
}

// TestValidationStage_MissingFile は存在しないファイルパスで致命的エラーとなることを検証します。
func TestValidationStage_MissingFile(t *testing.T) {
	t.Parallel()

	s := NewValidationStage()
	st := entity.NewAnalysisState(filepath.Join(t.TempDir(), "missing.jpg"), nil, "standard")

	err := s.Run(context.Background(), st)
	if err == nil || !IsFatal(err) {
		t.Fatalf("Run() error = %v, want 致命的エラー", err)
	}
}

// TestValidationStage_ResizesLargeImage は長辺が上限を超える画像が縮小されることを検証します。
func TestValidationStage_ResizesLargeImage(t *testing.T) {
	t.Parallel()

	s := NewValidationStage()
	original := encodeTestImage(t, 3000, 1500)
	st := entity.NewAnalysisState("", original, "standard")

	if err := s.Run(context.Background(), st); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	resized, err := imaging.Decode(bytes.NewReader(st.ImageData))
	if err != nil {
		t.Fatalf("縮小後画像のデコードに失敗: %v", err)
	}
	bounds := resized.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		t.Errorf("縮小後サイズ = %dx%d, 長辺は%d以下であるべき", bounds.Dx(), bounds.Dy(), maxImageDimension)
	}
	// 比率維持の確認（3000x1500 → 2048x1024）
	if bounds.Dx() != 2048 || bounds.Dy() != 1024 {
		t.Errorf("縮小後サイズ = %dx%d, want 2048x1024", bounds.Dx(), bounds.Dy())
	}
}
