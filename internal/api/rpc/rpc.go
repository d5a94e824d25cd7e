// Package rpc exposes the ledger over the Connect protocol. Messages are
// plain Go structs carried by a JSON codec, so no generated code is
// involved.
package rpc

import (
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

// ServiceName is the fully-qualified name of the ledger service.
const ServiceName = "qash.v1.LedgerService"

// Procedure paths.
const (
	RegisterProcedure          = "/" + ServiceName + "/Register"
	LoginProcedure             = "/" + ServiceName + "/Login"
	GetSummaryProcedure        = "/" + ServiceName + "/GetSummary"
	ListTransactionsProcedure  = "/" + ServiceName + "/ListTransactions"
	AddTransactionProcedure    = "/" + ServiceName + "/AddTransaction"
	EditTransactionProcedure   = "/" + ServiceName + "/EditTransaction"
	DeleteTransactionProcedure = "/" + ServiceName + "/DeleteTransaction"
	ListBudgetsProcedure       = "/" + ServiceName + "/ListBudgets"
	ListSavingGoalsProcedure   = "/" + ServiceName + "/ListSavingGoals"
)

// Codec marshals messages with encoding/json. It replaces connect's
// protobuf-JSON codec under the same "json" name.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// NewHandler builds the Connect handlers for every procedure and returns
// the path prefix to mount them under.
func NewHandler(svc *service.Services, tokens api.Tokens) (string, http.Handler) {
	s := &LedgerServer{svc: svc, tokens: tokens}
	opts := []connect.HandlerOption{
		connect.WithCodec(Codec{}),
		connect.WithInterceptors(
			middleware.RequireAuth(tokens.Manager, RegisterProcedure, LoginProcedure),
			middleware.LoggingInterceptor(),
		),
	}

	mux := http.NewServeMux()
	mux.Handle(RegisterProcedure, connect.NewUnaryHandler(RegisterProcedure, s.Register, opts...))
	mux.Handle(LoginProcedure, connect.NewUnaryHandler(LoginProcedure, s.Login, opts...))
	mux.Handle(GetSummaryProcedure, connect.NewUnaryHandler(GetSummaryProcedure, s.GetSummary, opts...))
	mux.Handle(ListTransactionsProcedure, connect.NewUnaryHandler(ListTransactionsProcedure, s.ListTransactions, opts...))
	mux.Handle(AddTransactionProcedure, connect.NewUnaryHandler(AddTransactionProcedure, s.AddTransaction, opts...))
	mux.Handle(EditTransactionProcedure, connect.NewUnaryHandler(EditTransactionProcedure, s.EditTransaction, opts...))
	mux.Handle(DeleteTransactionProcedure, connect.NewUnaryHandler(DeleteTransactionProcedure, s.DeleteTransaction, opts...))
	mux.Handle(ListBudgetsProcedure, connect.NewUnaryHandler(ListBudgetsProcedure, s.ListBudgets, opts...))
	mux.Handle(ListSavingGoalsProcedure, connect.NewUnaryHandler(ListSavingGoalsProcedure, s.ListSavingGoals, opts...))
	return "/" + ServiceName + "/", mux
}
