package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/storeadmin/internal/core"
	"github.com/JonMunkholm/storeadmin/internal/logging"
	"github.com/JonMunkholm/storeadmin/internal/web/templates"
)

// noticeDeleteFailed is the notice parameter set after a rejected delete.
const noticeDeleteFailed = "delete-failed"

// handleList renders one page of an entity listing.
//
// Query params: query (search text), page (1-based), confirm (id of the row
// showing the inline delete confirmation), notice.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	def, ok := s.entityDefinition(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	key := def.Info.Key

	params := r.URL.Query()
	query := params.Get("query")
	page := parseIntParam(r, "page", 1)
	confirm := params.Get("confirm")

	var notice string
	if params.Get("notice") == noticeDeleteFailed {
		notice = (&core.DatabaseError{Entity: def.Info.Singular, Op: "Delete"}).Error()
	}

	// Only the plain listing is shared between requests.
	cacheable := s.cache != nil && confirm == "" && notice == ""
	if cacheable {
		if body, hit := s.cache.Get(key, query, page); hit {
			w.Header().Set("X-Cache", "hit")
			writeHTML(w, http.StatusOK, body)
			return
		}
	}
	gen := s.cache.Generation(key)

	result, err := s.service.ListPage(ctx, key, query, page)
	if err != nil {
		s.handleError(w, r, def, err)
		return
	}

	body, err := renderBytes(ctx, templates.ListPage(s.listView(def, result, confirm, notice)))
	if err != nil {
		logging.FromContext(ctx).Error("render failed", "entity", key, "error", err)
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	if cacheable {
		s.cache.PutIfCurrent(key, query, page, gen, body)
		w.Header().Set("X-Cache", "miss")
	}
	writeHTML(w, http.StatusOK, body)
}

// listView converts a listing result into its page data.
func (s *Server) listView(def core.EntityDefinition, result *core.ListResult, confirm, notice string) templates.ListView {
	path := def.Info.ListPath()
	returnPath := listURL(path, result.Query, result.Page)

	headers := make([]string, len(result.Columns))
	for i, col := range result.Columns {
		headers[i] = col.Label
	}

	rows := make([]templates.ListRow, len(result.Rows))
	for i, row := range result.Rows {
		id := row.ID()
		cells := make([]templates.Cell, len(result.Columns))
		for j, col := range result.Columns {
			cells[j] = formatCell(col, row[col.Name])
		}
		rowPath := path + "/" + url.PathEscape(id)
		rows[i] = templates.ListRow{
			ID:          id,
			Singular:    def.Info.Singular,
			Cells:       cells,
			EditPath:    rowPath + "/edit",
			DeletePath:  rowPath + "/delete",
			ConfirmPath: confirmURL(path, result.Query, result.Page, id),
			ReturnPath:  returnPath,
			Confirming:  id == confirm,
		}
	}

	return templates.ListView{
		Page:       s.page(def.Info.Label, path),
		Label:      def.Info.Label,
		Singular:   def.Info.Singular,
		ListPath:   path,
		CreatePath: path + "/create",
		Headers:    headers,
		Rows:       rows,
		Query:      result.Query,
		Notice:     notice,
		Pagination: buildPagination(path, result),
	}
}

// confirmURL is the listing URL with row id in the confirming state.
func confirmURL(path, query string, page int, id string) string {
	v := url.Values{}
	if query != "" {
		v.Set("query", query)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	v.Set("confirm", id)
	return path + "?" + v.Encode()
}

// safeReturn returns the listing URL to go back to after a delete. Anything
// that is not the entity's own listing falls back to its first page.
func safeReturn(def core.EntityDefinition, raw string) string {
	path := def.Info.ListPath()
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path != path {
		return path
	}
	q := u.Query()
	q.Del("confirm")
	q.Del("notice")
	u.RawQuery = q.Encode()
	return u.String()
}

// withNotice appends a notice parameter to a listing URL.
func withNotice(target, notice string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}
