// 冷蔵庫画像をローカルで解析するCLIです。データベースを使わず
// メモリ上の在庫ストアでパイプライン全体を実行し、結果をJSONで出力します。
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"fridge_backend/internal/app/di"
	analysisusecase "fridge_backend/internal/feature/analysis/usecase"
)

func main() {
	imagePath := flag.String("image", "", "path to the fridge image (required)")
	dietType := flag.String("diet", "", "diet type: standard, diet, health, patient")
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// DBなし・キャッシュなしで組み立てる
	runner, err := di.NewAnalysisRunner(ctx, di.NewInventoryAggregator(nil), nil)
	if err != nil {
		log.Fatal("failed to build analysis pipeline:", err)
	}

	uc := analysisusecase.NewAnalysisUsecase(runner)
	result := uc.AnalyzeFile(ctx, *imagePath, *dietType)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))

	if !result.Success {
		os.Exit(1)
	}
}
