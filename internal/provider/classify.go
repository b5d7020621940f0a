package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrOverloaded — провайдер перегружен или исчерпана квота; отправку
// стоит повторить через следующего провайдера.
var ErrOverloaded = errors.New("provider quota/overload")

// overloadMarkers — известные подстроки перегрузки/квоты в телах ответов.
// Эвристика: часть API возвращает такие ошибки с HTTP 200, поэтому
// одного статуса недостаточно. Список пополняется по мере встречаемости.
var overloadMarkers = []string{
	"overloaded",
	"quota",
	"rate limit",
	"rate_limit",
	"resource_exhausted",
}

func hasOverloadMarker(body string) bool {
	lower := strings.ToLower(body)
	for _, m := range overloadMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Classify сопоставляет транспортный статус и тело ответа с исходом:
// nil — успех; ErrOverloaded — перегрузка/квота (в том числе при 2xx);
// иначе — «неизвестная ошибка провайдера» с сообщением из error.message,
// когда оно есть. Перегрузка сознательно не смешивается с ошибками разбора.
func Classify(status int, body string) error {
	if status == http.StatusTooManyRequests || status >= 500 {
		return fmt.Errorf("%w (status=%d)", ErrOverloaded, status)
	}
	if hasOverloadMarker(body) {
		return fmt.Errorf("%w: %s", ErrOverloaded, errorDetail(status, body))
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("unknown provider error: %s", errorDetail(status, body))
	}
	return nil
}

// errorDetail достаёт error.message из тела; когда его нет — статус и
// короткий фрагмент тела.
func errorDetail(status int, body string) string {
	if msg := gjson.Get(body, "error.message").String(); msg != "" {
		return msg
	}
	if b := strings.TrimSpace(body); b != "" && len(b) <= 200 {
		return fmt.Sprintf("status=%d: %s", status, b)
	}
	return fmt.Sprintf("status=%d", status)
}
