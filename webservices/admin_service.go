package webservices

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/jamesrr39/ownmap-shields/shielddef"
)

// ReloadFunc rebuilds the shield renderer, e.g. after the overrides file was edited
type ReloadFunc func() errorsx.Error

type AdminService struct {
	logger             *logpkg.Logger
	shieldService      *ShieldService
	reloadFunc         ReloadFunc
	shieldsURLBasePath string
	chi.Router
}

func NewAdminService(logger *logpkg.Logger, shieldService *ShieldService, reloadFunc ReloadFunc, shieldsURLBasePath string) *AdminService {
	as := &AdminService{logger, shieldService, reloadFunc, shieldsURLBasePath, chi.NewRouter()}

	as.Router.Get("/", as.handleGet)
	as.Router.Get("/stats", as.handleGetStats)
	as.Router.Post("/reload", as.handlePostReload)

	return as
}

func (as *AdminService) handleGetStats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, as.shieldService.stats())
}

func (as *AdminService) handlePostReload(w http.ResponseWriter, r *http.Request) {
	if as.reloadFunc == nil {
		errorsx.HTTPError(w, as.logger, errorsx.Errorf("reloading is not enabled"), http.StatusNotImplemented)
		return
	}

	err := as.reloadFunc()
	if err != nil {
		errorsx.HTTPError(w, as.logger, errorsx.Wrap(err), http.StatusInternalServerError)
		return
	}

	as.logger.Info("reloaded shield definitions")
	w.WriteHeader(http.StatusNoContent)
}

type shieldPreviewRow struct {
	Network   string
	ImageURLs []string
}

// handleGet shows every network's badge for a range of refs
func (as *AdminService) handleGet(w http.ResponseWriter, r *http.Request) {
	shieldSet := as.shieldService.Renderer().ShieldSet()

	var rows []shieldPreviewRow
	for _, network := range shieldSet.Networks() {
		row := shieldPreviewRow{Network: network}
		for _, ref := range shield.SampleRefs {
			routeRef := &shield.RouteRef{Network: network, Ref: ref}
			row.ImageURLs = append(row.ImageURLs, as.shieldsURLBasePath+"/image?id="+url.QueryEscape(routeRef.Identifier()))
		}
		rows = append(rows, row)
	}

	data := map[string]interface{}{
		"Rows":           rows,
		"DefaultNetwork": shielddef.DefaultNetwork,
		"Refs":           shield.SampleRefs,
		"Stats":          as.shieldService.stats(),
	}

	err := adminTmpl.Execute(w, data)
	if err != nil {
		errorsx.HTTPError(w, as.logger, errorsx.Wrap(err), http.StatusInternalServerError)
		return
	}
}

var adminTmpl *template.Template

func init() {
	var err error
	adminTmpl, err = template.New("admin/index.html").Parse(adminTemplate)
	if err != nil {
		panic(err)
	}
}

const adminTemplate = `
<html>
	<head>
		<title>shields</title>
		<style type="text/css">
		table {
			border-collapse: collapse;
		}
		td, th {
			border: 1px solid lightgrey;
			padding: 4px;
			text-align: center;
		}
		img {
			height: 30px;
		}
		</style>
		<script>
		function reload() {
			fetch('reload', {method: 'POST'})
				.then(resp => {
					if (!resp.ok) {
						throw new Error('status ' + resp.status);
					}
					window.location.reload();
				})
				.catch(e => {
					console.error(e);
					alert('failed to reload shield definitions: ' + e);
				});
		}
		</script>
	</head>
	<body>
		<p>
			{{.Stats.CachedImages}} images drawn ({{.Stats.MaxCachedImages}} max), up to {{.Stats.MaxConcurrentRenders}} at a time.
			<button onclick="reload()">reload definitions</button>
		</p>
		<table>
			<tr>
				<th>network</th>
				{{range .Refs}}<th>{{.}}</th>{{end}}
			</tr>
			{{range .Rows}}
			<tr>
				<th>{{.Network}}{{if eq .Network $.DefaultNetwork}} (unknown networks){{end}}</th>
				{{range .ImageURLs}}<td><img src="{{.}}" /></td>{{end}}
			</tr>
			{{end}}
		</table>
	</body>
</html>
`
