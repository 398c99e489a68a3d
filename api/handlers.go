package api

import (
	"net/http"

	"github.com/rvcore/vliw-repack/config"
	"github.com/rvcore/vliw-repack/riscv/bundle"
	"github.com/rvcore/vliw-repack/riscv/inst"
)

// handleCreateSession runs the analysis pipeline over the requested path
// and stores the result under a new session ID.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	session, err := s.sessions.CreateSession(req.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, SessionCreateResponse{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
	})
}

// handleListSessions lists every cached session ID.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.sessions.ListSessions()
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": ids})
}

// handleGetSessionStatus returns a session's top-line metrics.
func (s *Server) handleGetSessionStatus(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	rep := session.Result.Report(false)
	writeJSON(w, http.StatusOK, SessionStatusResponse{
		SessionID:            session.ID,
		Filename:             session.Result.Filename,
		OriginalBundleCount:  rep.Packing.OriginalBundleCount,
		OptimizedBundleCount: rep.Packing.OptimizedBundleCount,
		BundleReduction:      rep.Packing.BundleReduction,
		MergedPairs:          rep.Dependency.MergedPairs,
	})
}

// handleDestroySession evicts a cached session.
func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := s.sessions.DestroySession(sessionID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// handleGetBundles renders either the original or optimized bundle list for
// a session as JSON, selected by the "which" query parameter.
func (s *Server) handleGetBundles(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	bundles := session.Result.Optimized
	if r.URL.Query().Get("which") == "original" {
		bundles = session.Result.Original
	}

	writeJSON(w, http.StatusOK, BundlesResponse{Bundles: toBundleInfo(bundles)})
}

// handleGetReport renders a session's full statistics report in the
// requested format.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	verbose := r.URL.Query().Get("verbose") == "true"

	rep := session.Result.Report(verbose)

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		if err := rep.WriteCSV(w); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain")
		if err := rep.WriteText(w); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	default:
		if err := rep.WriteJSON(w); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

func toBundleInfo(bundles []*bundle.Bundle) []BundleInfo {
	out := make([]BundleInfo, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, BundleInfo{
			OriginAddress: b.OriginAddress,
			ValidCount:    b.ValidCount(),
			Instructions:  toInstructionInfo(b.Instructions),
		})
	}
	return out
}

func toInstructionInfo(instructions []inst.Instruction) []InstructionInfo {
	out := make([]InstructionInfo, 0, len(instructions))
	for _, in := range instructions {
		out = append(out, InstructionInfo{
			Address:   in.Address,
			Encoding:  in.Encoding,
			Mnemonic:  in.Mnemonic,
			Operands:  in.OperandText,
			Category:  in.Category.String(),
			IsPadding: in.IsPadding,
		})
	}
	return out
}

// handleGetConfig returns the server's active configuration.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.config)
}

// handleUpdateConfig replaces the server's in-memory configuration. It does
// not persist to disk.
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if err := readJSON(r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid config body")
		return
	}
	s.config = &cfg
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
