package auth

import "strings"

// ============================================================================
// SCOPES - recruitment workspace
// ============================================================================

const (
	ScopeAll = "*"

	ScopeCandidatesAll    = "candidates:*"
	ScopeCandidatesRead   = "candidates:read"
	ScopeCandidatesWrite  = "candidates:write"
	ScopeCandidatesDelete = "candidates:delete"
	ScopeCandidatesExport = "candidates:export"

	ScopeJobsAll    = "jobs:*"
	ScopeJobsRead   = "jobs:read"
	ScopeJobsWrite  = "jobs:write"
	ScopeJobsDelete = "jobs:delete"

	ScopeNotesAll   = "notes:*"
	ScopeNotesRead  = "notes:read"
	ScopeNotesWrite = "notes:write"

	ScopeTagsAll   = "tags:*"
	ScopeTagsRead  = "tags:read"
	ScopeTagsWrite = "tags:write"

	ScopeMatchesAll    = "matches:*"
	ScopeMatchesRead   = "matches:read"
	ScopeMatchesReview = "matches:review"

	ScopeAIAll        = "ai:*"
	ScopeAIAnalyze    = "ai:analyze"
	ScopeAIRecommend  = "ai:recommend"
	ScopeAIDuplicates = "ai:duplicates"

	ScopeAnalyticsView = "analytics:view"

	ScopeUsersAll   = "users:*"
	ScopeUsersRead  = "users:read"
	ScopeUsersWrite = "users:write"

	ScopeAuditRead = "audit:read"

	ScopeIntegrationsAll   = "integrations:*"
	ScopeIntegrationsWrite = "integrations:write"
)

// ScopeCategories groups scopes for display
var ScopeCategories = map[string][]string{
	"Candidates":   {ScopeCandidatesAll, ScopeCandidatesRead, ScopeCandidatesWrite, ScopeCandidatesDelete, ScopeCandidatesExport},
	"Jobs":         {ScopeJobsAll, ScopeJobsRead, ScopeJobsWrite, ScopeJobsDelete},
	"Notes":        {ScopeNotesAll, ScopeNotesRead, ScopeNotesWrite},
	"Tags":         {ScopeTagsAll, ScopeTagsRead, ScopeTagsWrite},
	"Matches":      {ScopeMatchesAll, ScopeMatchesRead, ScopeMatchesReview},
	"AI":           {ScopeAIAll, ScopeAIAnalyze, ScopeAIRecommend, ScopeAIDuplicates},
	"Analytics":    {ScopeAnalyticsView},
	"Users":        {ScopeUsersAll, ScopeUsersRead, ScopeUsersWrite},
	"Audit":        {ScopeAuditRead},
	"Integrations": {ScopeIntegrationsAll, ScopeIntegrationsWrite},
}

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// RoleScopes is the scope set granted to each role
var RoleScopes = map[string][]string{
	RoleAdmin: {ScopeAll},
	RoleManager: {
		ScopeCandidatesAll,
		ScopeJobsAll,
		ScopeNotesAll,
		ScopeTagsAll,
		ScopeMatchesAll,
		ScopeAIAll,
		ScopeAnalyticsView,
		ScopeUsersRead,
		ScopeIntegrationsAll,
	},
	RoleUser: {
		ScopeCandidatesRead,
		ScopeCandidatesWrite,
		ScopeJobsRead,
		ScopeNotesAll,
		ScopeTagsRead,
		ScopeMatchesRead,
		ScopeAIAnalyze,
		ScopeAIRecommend,
		ScopeAnalyticsView,
	},
}

// ScopesForRole returns a copy of the role's scopes; unknown roles get none
func ScopesForRole(role string) []string {
	scopes := RoleScopes[role]
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}

// HasScope reports whether granted covers required. "*" covers everything
// and "resource:*" covers every action on that resource.
func HasScope(granted []string, required string) bool {
	resource, _, _ := strings.Cut(required, ":")
	for _, g := range granted {
		switch {
		case g == ScopeAll, g == required:
			return true
		case strings.HasSuffix(g, ":*") && strings.TrimSuffix(g, ":*") == resource:
			return true
		}
	}
	return false
}

// HasAnyScope reports whether granted covers at least one of required
func HasAnyScope(granted []string, required ...string) bool {
	for _, r := range required {
		if HasScope(granted, r) {
			return true
		}
	}
	return false
}
