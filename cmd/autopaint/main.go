package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AutopaintClient/internal/app/requester"
	"AutopaintClient/internal/app/sender"
	"AutopaintClient/internal/capture"
	"AutopaintClient/internal/config"
	"AutopaintClient/internal/credentials"
	"AutopaintClient/internal/editor"
	"AutopaintClient/internal/interpreter"
	"AutopaintClient/internal/palette"
	"AutopaintClient/internal/prompt"
	"AutopaintClient/internal/provider"
	"AutopaintClient/internal/script"
	"AutopaintClient/internal/service/history"

	"go.uber.org/zap"
)

// Консольная обвязка ассистента: читает запросы с stdin, снимает демо-холст,
// гоняет цепочку провайдеров в фоне и печатает результат. В хост-редакторе
// той же связкой управляет диалоговое окно.
func main() {
	cfg := config.NewConfig()
	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	sugar.Infow("Starting autopaint", "DebugMode", cfg.DebugMode)

	creds := credentials.NewStore(cfg.CredentialsFile)
	doc := demoDocument()

	grab := capture.New(editor.PNGSaver{}, cfg.CaptureTempFile, sugar)
	providers := []provider.Provider{
		provider.NewGemini(cfg.Gemini, sugar), // единственный с поддержкой изображения — идёт первым
		provider.NewGroq(cfg.Groq, sugar),
		provider.NewOpenRouter(cfg.OpenRouter, sugar),
	}
	req := requester.New(creds, providers, sugar)
	snd := sender.New(cfg, req, sugar)
	interp := interpreter.New(script.NewWriterEngine(os.Stdout), cfg.PreviewLimit, sugar)
	hist := history.New(cfg.MaxHistoryRecords)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Autopaint chat. Опишите, что нарисовать; Ctrl+C — выход.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		userPrompt := scanner.Text()
		if userPrompt == "" {
			continue
		}
		hist.Add("User", userPrompt)

		// Захват — синхронно, до старта воркера: документом владеет этот поток
		imgB64, err := grab.Capture(doc)
		if err != nil {
			sugar.Errorw("Не удалось снять холст", "error", err)
			fmt.Println("System: Error capturing image.")
			continue
		}

		in := prompt.Input{
			UserPrompt:   userPrompt,
			Width:        doc.Sprite.Width,
			Height:       doc.Sprite.Height,
			Selection:    doc.Selection,
			PaletteTable: palette.ForDocument(doc),
		}
		if err := snd.Start(ctx, prompt.Build(in), imgB64); err != nil {
			fmt.Println("System:", err)
			continue
		}
		fmt.Println("System: Thinking...")

		if !waitOutcome(ctx, cfg, snd, interp, doc, hist) {
			break // контекст закрыт — выходим
		}
	}

	snd.Abort()
	sugar.Infow("Autopaint stopped")
}

// waitOutcome крутит таймер опроса до терминального исхода отправки.
// Возвращает false, когда приложение останавливают.
func waitOutcome(ctx context.Context, cfg *config.Config, snd *sender.Sender,
	interp *interpreter.Interpreter, doc *editor.Document, hist *history.History) bool {

	t := time.NewTicker(cfg.PollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			snd.Abort()
			return false
		case <-t.C:
			out, ok := snd.Poll()
			if !ok {
				continue
			}
			if out.Err != nil {
				fmt.Println("System:", out.Err)
				return true
			}
			fmt.Printf("System: ответил %s\n", out.Result.Name)
			act, err := interp.Interpret(out.Result.Body, doc.Sprite.PaletteAt(0), doc.Selection)
			if err != nil {
				fmt.Println("System:", err)
				return true
			}
			if act.Executed {
				fmt.Println("System: Done!")
			} else {
				fmt.Println("AI:", act.Preview)
				hist.Add("AI", act.Preview)
			}
			return true
		}
	}
}

// demoDocument — холст 32x32 со стандартной 16-цветной палитрой; замена
// активного документа хост-редактора для консольного запуска.
func demoDocument() *editor.Document {
	pal := editor.NewPalette([]editor.Color{
		{R: 0, G: 0, B: 0, A: 0}, {R: 29, G: 43, B: 83, A: 255}, {R: 126, G: 37, B: 83, A: 255}, {R: 0, G: 135, B: 81, A: 255},
		{R: 171, G: 82, B: 54, A: 255}, {R: 95, G: 87, B: 79, A: 255}, {R: 194, G: 195, B: 199, A: 255}, {R: 255, G: 241, B: 232, A: 255},
		{R: 255, G: 0, B: 77, A: 255}, {R: 255, G: 163, B: 0, A: 255}, {R: 255, G: 236, B: 39, A: 255}, {R: 0, G: 228, B: 54, A: 255},
		{R: 41, G: 173, B: 255, A: 255}, {R: 131, G: 118, B: 156, A: 255}, {R: 255, G: 119, B: 168, A: 255}, {R: 255, G: 204, B: 170, A: 255},
	})
	return &editor.Document{
		Filename: "untitled.png",
		Sprite:   editor.NewSprite(32, 32, pal),
	}
}
