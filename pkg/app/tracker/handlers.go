package tracker

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/DINetworks/DI-U2U/pkg/app/errors"
	apphttp "github.com/DINetworks/DI-U2U/pkg/app/http"
	"github.com/DINetworks/DI-U2U/pkg/bridge"
	"github.com/DINetworks/DI-U2U/pkg/initiator"
	"github.com/DINetworks/DI-U2U/pkg/tracker"
	"github.com/DINetworks/DI-U2U/pkg/txstore"
)

// TransactionStore is the store surface exposed over HTTP
type TransactionStore interface {
	List() []bridge.Transaction
	Get(id string) (bridge.Transaction, error)
	FindByTxHash(hash string) (bridge.Transaction, bool)
	Update(ctx context.Context, id string, patch bridge.Patch) (bridge.Transaction, bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context) error
}

// Initiator submits bridge operations
type Initiator interface {
	ExecuteDeposit(ctx context.Context, req initiator.DepositRequest) (string, error)
	ExecuteWithdraw(ctx context.Context, req initiator.WithdrawRequest) (string, error)
	ExecuteSendToken(ctx context.Context, req initiator.SendTokenRequest) (string, error)
	ExecuteContractCall(ctx context.Context, req initiator.ContractCallRequest) (string, error)
}

// Tracker reports in-flight tracking work and drops it for removed records
type Tracker interface {
	Status() tracker.Status
	Forget(tx bridge.Transaction)
}

type handlers struct {
	store     TransactionStore
	initiator Initiator
	tracker   Tracker
}

// RegisterRoutes mounts the transaction and bridge endpoints on r. A nil
// submitter disables the bridge endpoints.
func RegisterRoutes(r chi.Router, store TransactionStore, submitter Initiator, tracking Tracker, logger *zap.Logger) {
	h := &handlers{store: store, initiator: submitter, tracker: tracking}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", apphttp.HandleError(logger, h.getStatus))

		r.Get("/transactions", apphttp.HandleError(logger, h.listTransactions))
		r.Delete("/transactions", apphttp.HandleError(logger, h.resetTransactions))
		r.Get("/transactions/{id}", apphttp.HandleError(logger, h.getTransaction))
		r.Delete("/transactions/{id}", apphttp.HandleError(logger, h.removeTransaction))
		r.Post("/transactions/{id}/dialog-shown", apphttp.HandleError(logger, h.markDialogShown))

		r.Route("/bridge", func(r chi.Router) {
			r.Post("/deposit", apphttp.HandleError(logger, h.deposit))
			r.Post("/withdraw", apphttp.HandleError(logger, h.withdraw))
			r.Post("/send-token", apphttp.HandleError(logger, h.sendToken))
			r.Post("/call-contract", apphttp.HandleError(logger, h.callContract))
		})
	})
}

// ListResponse is the body of GET /api/v1/transactions
type ListResponse struct {
	Transactions []bridge.Transaction `json:"transactions"`
}

func (h *handlers) getStatus(w http.ResponseWriter, _ *http.Request) error {
	return apphttp.WriteJSON(w, http.StatusOK, h.tracker.Status())
}

func (h *handlers) listTransactions(w http.ResponseWriter, r *http.Request) error {
	txs := h.store.List()

	if status := bridge.Status(r.URL.Query().Get("status")); status != "" {
		switch status {
		case bridge.StatusPending, bridge.StatusCompleted, bridge.StatusFailed:
		default:
			return apperrors.BadRequestError(nil, "invalid status filter")
		}
		filtered := make([]bridge.Transaction, 0, len(txs))
		for _, tx := range txs {
			if tx.Status == status {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}

	return apphttp.WriteJSON(w, http.StatusOK, ListResponse{Transactions: txs})
}

func (h *handlers) getTransaction(w http.ResponseWriter, r *http.Request) error {
	tx, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		return notFound(err)
	}
	return apphttp.WriteJSON(w, http.StatusOK, tx)
}

func (h *handlers) removeTransaction(w http.ResponseWriter, r *http.Request) error {
	tx, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		return notFound(err)
	}
	found, err := h.store.Remove(r.Context(), tx.ID)
	if err != nil {
		return apperrors.GeneralError(err)
	}
	if !found {
		return notFound(txstore.ErrNotFound)
	}
	h.tracker.Forget(tx)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *handlers) resetTransactions(w http.ResponseWriter, r *http.Request) error {
	txs := h.store.List()
	if err := h.store.Reset(r.Context()); err != nil {
		return apperrors.GeneralError(err)
	}
	for _, tx := range txs {
		h.tracker.Forget(tx)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *handlers) markDialogShown(w http.ResponseWriter, r *http.Request) error {
	tx, found, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), bridge.Patch{}.WithDialogShown(true))
	if err != nil {
		return apperrors.GeneralError(err)
	}
	if !found {
		return notFound(txstore.ErrNotFound)
	}
	return apphttp.WriteJSON(w, http.StatusOK, tx)
}

func (h *handlers) deposit(w http.ResponseWriter, r *http.Request) error {
	var req initiator.DepositRequest
	return h.submit(w, r, &req, func(ctx context.Context) (string, error) {
		return h.initiator.ExecuteDeposit(ctx, req)
	})
}

func (h *handlers) withdraw(w http.ResponseWriter, r *http.Request) error {
	var req initiator.WithdrawRequest
	return h.submit(w, r, &req, func(ctx context.Context) (string, error) {
		return h.initiator.ExecuteWithdraw(ctx, req)
	})
}

func (h *handlers) sendToken(w http.ResponseWriter, r *http.Request) error {
	var req initiator.SendTokenRequest
	return h.submit(w, r, &req, func(ctx context.Context) (string, error) {
		return h.initiator.ExecuteSendToken(ctx, req)
	})
}

func (h *handlers) callContract(w http.ResponseWriter, r *http.Request) error {
	var req initiator.ContractCallRequest
	return h.submit(w, r, &req, func(ctx context.Context) (string, error) {
		return h.initiator.ExecuteContractCall(ctx, req)
	})
}

// submit decodes the request into req and runs execute. A rejected signature
// answers 204; a submitted transaction answers 202 with its record.
func (h *handlers) submit(w http.ResponseWriter, r *http.Request, req any, execute func(context.Context) (string, error)) error {
	if h.initiator == nil {
		return apperrors.NotSupportedError(nil, "bridge initiation is disabled: no wallet configured")
	}
	if err := apphttp.DecodeJSON(w, r, req); err != nil {
		return err
	}

	hash, err := execute(r.Context())
	switch {
	case errors.Is(err, initiator.ErrInvalidRequest):
		return apperrors.BadRequestError(err, err.Error())
	case err != nil:
		return apperrors.DependencyFailureError(err, "failed to submit transaction")
	case hash == "":
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	tx, ok := h.store.FindByTxHash(hash)
	if !ok {
		return apphttp.WriteJSON(w, http.StatusAccepted, bridge.Transaction{TxHash: hash, Status: bridge.StatusPending})
	}
	return apphttp.WriteJSON(w, http.StatusAccepted, tx)
}

func notFound(err error) error {
	return apperrors.ResourceNotFoundError(err, "transaction not found")
}
