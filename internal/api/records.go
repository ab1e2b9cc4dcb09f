package api

import (
	"net/http"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func (h *Handler) listListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.store.Listings().ReadAll()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listings)
}

func (h *Handler) getListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "foodID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	listing, err := h.store.Listings().Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listing)
}

func (h *Handler) createListing(w http.ResponseWriter, r *http.Request) {
	var listing types.FoodListing
	if err := decodeBody(w, r, &listing); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.Listings().Create(listing); err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("food listing created", "food_id", listing.FoodID)
	h.writeJSON(w, http.StatusCreated, listing)
}

func (h *Handler) updateListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "foodID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var update types.ListingUpdate
	if err := decodeBody(w, r, &update); err != nil {
		h.fail(w, r, err)
		return
	}
	listings := h.store.Listings()
	if err := listings.Update(id, update); err != nil {
		h.fail(w, r, err)
		return
	}
	listing, err := listings.Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listing)
}

func (h *Handler) deleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "foodID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.Listings().Delete(id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.store.Claims().ReadAll()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, claims)
}

func (h *Handler) getClaim(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "claimID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	claim, err := h.store.Claims().Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, claim)
}

// createClaim handles POST /api/claims. A missing Timestamp is set to now.
func (h *Handler) createClaim(w http.ResponseWriter, r *http.Request) {
	var claim types.Claim
	if err := decodeBody(w, r, &claim); err != nil {
		h.fail(w, r, err)
		return
	}
	if claim.Timestamp.IsZero() {
		claim.Timestamp = h.now().UTC().Truncate(time.Second)
	}
	if err := h.store.Claims().Create(claim); err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("claim created", "claim_id", claim.ClaimID, "status", claim.Status)
	h.writeJSON(w, http.StatusCreated, claim)
}

// statusUpdate is the body of PUT /api/claims/{claimID}/status.
type statusUpdate struct {
	Status string `json:"Status"`
}

func (h *Handler) updateClaimStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "claimID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var body statusUpdate
	if err := decodeBody(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	claims := h.store.Claims()
	if err := claims.UpdateStatus(id, body.Status); err != nil {
		h.fail(w, r, err)
		return
	}
	claim, err := claims.Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("claim status updated", "claim_id", id, "status", body.Status)
	h.writeJSON(w, http.StatusOK, claim)
}

func (h *Handler) deleteClaim(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "claimID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.Claims().Delete(id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
