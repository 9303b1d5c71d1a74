// Package dispatcher answers assembled requests by serving files from the root directory,
// redirecting to correlated peers or reporting errors.
package dispatcher

import (
	"io/fs"
	"strconv"

	"github.com/LightFelicis/CorrelatedTCPServers/config"
	"github.com/LightFelicis/CorrelatedTCPServers/http"
	"github.com/LightFelicis/CorrelatedTCPServers/http/method"
	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/correlation"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/pathlib"
	"github.com/LightFelicis/CorrelatedTCPServers/router"
)

var _ router.Router = new(Dispatcher)

type Dispatcher struct {
	root        string
	contentType string
	table       *correlation.Table
	fs          Filesystem
}

func New(cfg *config.Config, root string, table *correlation.Table, fsys Filesystem) *Dispatcher {
	if table == nil {
		table = correlation.New()
	}

	if fsys == nil {
		fsys = OS{}
	}

	return &Dispatcher{
		root:        root,
		contentType: cfg.Files.ContentType,
		table:       table,
		fs:          fsys,
	}
}

func (d *Dispatcher) OnRequest(request *http.Request) *http.Response {
	if !request.Implemented {
		return d.OnError(request, status.ErrMethodNotImplemented)
	}

	return closeIfAsked(request, d.serve(request))
}

func (d *Dispatcher) OnError(request *http.Request, err error) *http.Response {
	return closeIfAsked(request, http.Error(err))
}

func (d *Dispatcher) serve(request *http.Request) *http.Response {
	path, err := pathlib.Resolve(d.root, request.Target)
	if err != nil {
		return http.Error(status.ErrNotFound)
	}

	if info, ok := d.regular(path); ok {
		return d.file(request, path, info)
	}

	entry, found := d.table.Lookup(request.Target)
	if !found {
		return http.Error(status.ErrNotFound)
	}

	return http.NewResponse().
		WithCode(status.Found).
		Header("Location", entry.Location())
}

func (d *Dispatcher) regular(path string) (fs.FileInfo, bool) {
	info, err := d.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}

	return info, true
}

func (d *Dispatcher) file(request *http.Request, path string, info fs.FileInfo) *http.Response {
	resp := http.NewResponse().Header("Content-Type", d.contentType)

	if request.MethodEnum() == method.HEAD {
		return resp.Header("Content-Length", strconv.FormatInt(info.Size(), 10))
	}

	file, err := d.fs.Open(path)
	if err != nil {
		return http.Error(status.ErrNotFound)
	}

	// the file might have been replaced since the first stat
	info, err = file.Stat()
	if err != nil || !info.Mode().IsRegular() {
		_ = file.Close()
		return http.Error(status.ErrNotFound)
	}

	return resp.Stream(file, info.Size())
}

func closeIfAsked(request *http.Request, resp *http.Response) *http.Response {
	if request != nil && request.WantsClose() {
		resp.WithClose()
	}

	return resp
}
