// Package capture снимает активный документ в base64-PNG для отправки
// мультимодальному провайдеру.
package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"AutopaintClient/internal/editor"

	"go.uber.org/zap"
)

// Adapter сохраняет документ во временный файл через механизм сохранения
// хоста и возвращает содержимое файла в base64.
type Adapter struct {
	saver    editor.Saver
	tempPath string
	logger   *zap.SugaredLogger
}

func New(saver editor.Saver, tempPath string, logger *zap.SugaredLogger) *Adapter {
	return &Adapter{saver: saver, tempPath: tempPath, logger: logger}
}

// Capture временно подменяет имя файла документа, вызывает сохранение и
// читает записанные байты. Имя файла восстанавливается на любом исходе —
// и при ошибке сохранения, и при ошибке чтения. Пустой результат с
// ошибкой означает, что отправку нужно прервать и вернуть ввод пользователю.
func (a *Adapter) Capture(doc *editor.Document) (string, error) {
	if doc == nil {
		return "", errors.New("capture: no active document")
	}

	oldName := doc.Filename
	doc.Filename = a.tempPath
	err := a.saver.Save(doc, a.tempPath)
	doc.Filename = oldName
	if err != nil {
		return "", fmt.Errorf("capture: save document: %w", err)
	}

	data, err := os.ReadFile(a.tempPath)
	if err != nil {
		return "", fmt.Errorf("capture: read temp file: %w", err)
	}
	if a.logger != nil {
		a.logger.Debugw("Снимок холста готов", "bytes", len(data), "path", a.tempPath)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
