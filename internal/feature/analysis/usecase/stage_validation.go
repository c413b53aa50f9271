package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"fridge_backend/internal/feature/analysis/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// maxImageDimension はアダプターへ渡す前の最大辺長です。超過時は縮小します。
	maxImageDimension = 2048
)

// supportedExtensions はパス入力時に受け付ける画像形式です。
var supportedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// ValidationStage は画像入力を検証するステージです。画像は後続すべての
// ステージの前提条件のため、ここでの失敗のみパイプライン全体を停止させます。
type ValidationStage struct{}

// NewValidationStage はValidationStageを生成します。
func NewValidationStage() *ValidationStage {
	return &ValidationStage{}
}

// Name はステージ名を返します。失敗時のマーカーは"validation_failed"になります。
func (s *ValidationStage) Name() string { return "validation" }

// Run は画像の存在・形式・サイズを検証し、必要ならデコード可能な形へ正規化します。
// 長辺がmaxImageDimensionを超える画像は縮小してJPEGに再エンコードします。
func (s *ValidationStage) Run(_ context.Context, st *entity.AnalysisState) error {
	if len(st.ImageData) == 0 && st.ImagePath == "" {
		return Fatal(errors.New("image path or image data is required"))
	}

	if len(st.ImageData) == 0 {
		ext := strings.ToLower(filepath.Ext(st.ImagePath))
		if !supportedExtensions[ext] {
			return Fatal(fmt.Errorf("unsupported image format: %q", ext))
		}
		data, err := os.ReadFile(st.ImagePath)
		if err != nil {
			return Fatal(fmt.Errorf("failed to read image file: %w", err))
		}
		st.ImageData = data
	}

	if len(st.ImageData) > MaxImageSize {
		return Fatal(fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize))
	}

	img, err := imaging.Decode(bytes.NewReader(st.ImageData))
	if err != nil {
		return Fatal(fmt.Errorf("image data is corrupt: %w", err))
	}

	// ビジョンAPIの入力制限を考慮し、大きすぎる画像は比率を保って縮小する
	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		resized := imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
			return Fatal(fmt.Errorf("failed to re-encode resized image: %w", err))
		}
		st.ImageData = buf.Bytes()
	}

	st.CurrentStage = "image_validated"
	return nil
}
