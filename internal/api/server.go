package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gallerynet/settlement-engine/internal/engine"
	"github.com/gallerynet/settlement-engine/internal/fees"
	"github.com/gallerynet/settlement-engine/internal/ledger"
	"github.com/gallerynet/settlement-engine/internal/payment"
	"github.com/gallerynet/settlement-engine/internal/repository"
	"github.com/gallerynet/settlement-engine/internal/royalty"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server exposes the read-only state surfaces: fee rate, royalty rules,
// listings, auctions, ownership history, balances and the audit log.
type Server struct {
	engine      engine.TradeEngine
	feeSchedule fees.Schedule
	royalties   royalty.Registry
	ownership   ledger.Ledger
	bank        payment.Bank
	auditRepo   repository.AuditRepository
}

func NewServer(
	tradeEngine engine.TradeEngine,
	feeSchedule fees.Schedule,
	royalties royalty.Registry,
	ownership ledger.Ledger,
	bank payment.Bank,
	auditRepo repository.AuditRepository,
) Server {
	return Server{tradeEngine, feeSchedule, royalties, ownership, bank, auditRepo}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/fees", s.handleGetFees).Methods("GET")
	r.HandleFunc("/royalties/{assetId}", s.handleGetRoyalty).Methods("GET")
	r.HandleFunc("/listings/{assetId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/auctions/{auctionId}", s.handleGetAuction).Methods("GET")
	r.HandleFunc("/assets/{assetId}/history", s.handleGetHistory).Methods("GET")
	r.HandleFunc("/balances/{principal}", s.handleGetBalance).Methods("GET")
	r.HandleFunc("/audit", s.handleGetAudit).Methods("GET")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "Marketplace Settlement Engine")
}

func (s Server) handleGetFees(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]interface{}{
		"rateBps":     s.feeSchedule.FeeRate(),
		"beneficiary": s.feeSchedule.Beneficiary(),
	})
}

func (s Server) handleGetRoyalty(w http.ResponseWriter, r *http.Request) {
	assetId := mux.Vars(r)["assetId"]

	rule, ok := s.royalties.GetRule(assetId)
	if !ok {
		http.Error(w, "Royalty rule not found", http.StatusNotFound)
		return
	}

	writeJson(w, rule)
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	assetId := mux.Vars(r)["assetId"]

	listing, ok := s.engine.GetListing(assetId)
	if !ok {
		http.Error(w, "Listing not found", http.StatusNotFound)
		return
	}

	writeJson(w, listing)
}

func (s Server) handleGetAuction(w http.ResponseWriter, r *http.Request) {
	auctionId, err := strconv.ParseUint(mux.Vars(r)["auctionId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid auction id", http.StatusBadRequest)
		return
	}

	auction, ok := s.engine.GetAuction(auctionId)
	if !ok {
		http.Error(w, "Auction not found", http.StatusNotFound)
		return
	}

	writeJson(w, auction)
}

func (s Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	assetId := mux.Vars(r)["assetId"]

	writeJson(w, s.ownership.GetHistory(assetId))
}

func (s Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	principal := mux.Vars(r)["principal"]

	writeJson(w, map[string]interface{}{
		"principal": principal,
		"balance":   s.bank.BalanceOf(principal),
	})
}

func (s Server) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	size := 50
	if param := r.URL.Query().Get("size"); param != "" {
		if parsed, err := strconv.Atoi(param); err == nil && parsed > 0 {
			size = parsed
		}
	}

	events, err := s.auditRepo.GetRecent(size)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Audit log not available")
		http.Error(w, "Audit log not available", http.StatusInternalServerError)
		return
	}

	writeJson(w, events)
}

func writeJson(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().With(zap.Error(err)).Warn("Failed to encode response")
	}
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
