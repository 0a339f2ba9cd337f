// Package webhook реализует HTTP-обработчик уведомлений платёжного провайдера.
//
// Подпись уведомления проверяется по HMAC-SHA256 из заголовка
// X-Api-Signature; уведомления без валидной подписи отклоняются.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/paymentprovider"
)

// Service описывает интерфейс обработки уведомлений провайдера.
type Service interface {
	HandleWebhook(ctx context.Context, n paymentprovider.WebhookNotification) error
}

// Handler обрабатывает webhook-уведомления провайдера.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

func (h *Handler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expectedSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedSig), []byte(signature))
}

// ServeHTTP godoc
// @Summary Webhook платёжного провайдера
// @Description Принимает уведомление о статусе платежа, проверяет подпись и применяет оплаченный план.
// @Tags Billing
// @Accept  json
// @Produce  json
// @Success 200 {object} response.Response "Уведомление обработано"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело уведомления"
// @Failure 401 {object} response.ErrorResponse "Невалидная подпись"
// @Failure 500 {object} response.ErrorResponse "Ошибка обработки"
// @Router /billing/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Api-Signature")
	if signature == "" || !h.verifySignature(body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}

	var notification paymentprovider.WebhookNotification
	if err := json.Unmarshal(body, &notification); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.HandleWebhook(r.Context(), notification); err != nil {
		log.Error("failed to process webhook", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process webhook"))
		return
	}

	log.Info("webhook processed", slog.String("event", notification.Event))
	render.JSON(w, r, response.OK())
}
