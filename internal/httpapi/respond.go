package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

// statusFor maps an admission decision onto the HTTP status the clients
// expect.
func statusFor(d types.Decision) int {
	switch d {
	case types.DecisionAcceptedPrivileged, types.DecisionAcceptedCheckedIn:
		return http.StatusOK
	case types.DecisionRejectedOutOfWindow:
		return http.StatusForbidden
	case types.DecisionRejectedAlreadyCheckedIn:
		return http.StatusConflict
	default:
		return http.StatusUnauthorized
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: code, Message: msg})
}

// respond answers in the request's encoding: protobuf when the client sent
// protobuf and body has a protobuf form, JSON otherwise.
func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	if pb, ok := body.(protoBody); ok && isProtobuf(r) {
		writeProto(w, status, pb.ToProto())
		return
	}
	writeJSON(w, status, body)
}
