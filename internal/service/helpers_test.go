package service

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

var (
	t0       = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	t1       = t0.Add(time.Hour)
	fixedNow = t0.Add(48 * time.Hour)
)

// fakeRemote answers gateway calls from canned envelopes keyed by
// "path?query". Unknown GETs return an empty listing.
type fakeRemote struct {
	mu       sync.Mutex
	offline  bool
	gets     map[string]models.GetResponse
	getErrs  map[string]error
	getCalls []string

	postFn    func(path string, body map[string]any) (models.PostResponse, error)
	posts     []postCall
	uploadFn  func(path, filePath string) (models.PostResponse, error)
	uploads   []string
	onGetHook func(key string)
}

type postCall struct {
	path string
	body map[string]any
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		gets:    make(map[string]models.GetResponse),
		getErrs: make(map[string]error),
	}
}

func getKey(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func listing(items ...map[string]any) models.GetResponse {
	if items == nil {
		items = []map[string]any{}
	}
	raw, _ := json.Marshal(items)
	return models.GetResponse{Status: true, Data: models.GetData{Data: raw}}
}

func (f *fakeRemote) setPage(kind models.EntityKind, page string, items ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets[getKey("/api/"+kind.String()+"/list", url.Values{"pagenum": {page}})] = listing(items...)
}

func (f *fakeRemote) setChildren(kind models.EntityKind, parentID string, items ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets[getKey("/api/"+kind.String()+"/list", url.Values{"parentId": {parentID}})] = listing(items...)
}

func (f *fakeRemote) setGet(k string, resp models.GetResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets[k] = resp
}

func (f *fakeRemote) setGetErr(k string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErrs[k] = err
}

func (f *fakeRemote) calls(k string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.getCalls {
		if c == k {
			n++
		}
	}
	return n
}

func (f *fakeRemote) ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.offline {
		return context.DeadlineExceeded
	}
	return nil
}

func (f *fakeRemote) get(_ context.Context, path string, q url.Values) (models.GetResponse, error) {
	k := getKey(path, q)

	f.mu.Lock()
	f.getCalls = append(f.getCalls, k)
	hook := f.onGetHook
	err, failing := f.getErrs[k]
	resp, ok := f.gets[k]
	f.mu.Unlock()

	if hook != nil {
		hook(k)
	}
	if failing {
		return models.GetResponse{}, err
	}
	if !ok {
		return listing(), nil
	}
	return resp, nil
}

func (f *fakeRemote) post(_ context.Context, path string, body any) (models.PostResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return models.PostResponse{}, err
	}
	var m map[string]any
	if err = json.Unmarshal(raw, &m); err != nil {
		return models.PostResponse{}, err
	}

	f.mu.Lock()
	f.posts = append(f.posts, postCall{path: path, body: m})
	fn := f.postFn
	f.mu.Unlock()

	if fn != nil {
		return fn(path, m)
	}
	return models.PostResponse{Status: true, Data: models.PostData{StatusCode: 200, Message: "ok"}}, nil
}

func (f *fakeRemote) upload(_ context.Context, path, filePath string, _ map[string]string) (models.PostResponse, error) {
	f.mu.Lock()
	f.uploads = append(f.uploads, path)
	fn := f.uploadFn
	f.mu.Unlock()

	if fn != nil {
		return fn(path, filePath)
	}
	return models.PostResponse{Status: true, Data: models.PostData{StatusCode: 200, Data: json.RawMessage(`{"fileRef":"ref-1"}`)}}, nil
}

func (f *fakeRemote) postPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p.path)
	}
	return out
}

type testEnv struct {
	ctx    context.Context
	svc    *clientSyncService
	repos  *store.Repositories
	remote *fakeRemote
}

func newTestRepos(t *testing.T) *store.Repositories {
	t.Helper()
	db, err := store.NewConnect(context.Background(), config.DB{Driver: config.DriverSQLite, DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewRepositories(db, logger.Nop())
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	gw := mock.NewMockGateway(ctrl)
	remote := newFakeRemote()

	gw.EXPECT().Ping(gomock.Any()).DoAndReturn(remote.ping).AnyTimes()
	gw.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(remote.get).AnyTimes()
	gw.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(remote.post).AnyTimes()
	gw.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(remote.upload).AnyTimes()

	repos := newTestRepos(t)
	svc := NewClientSyncService(repos, gw, NewLogReporter(logger.Nop()), 2, logger.Nop()).(*clientSyncService)
	svc.now = func() time.Time { return fixedNow }

	return &testEnv{ctx: context.Background(), svc: svc, repos: repos, remote: remote}
}

func remoteItem(id, text string, modified time.Time) map[string]any {
	return map[string]any{
		"contentItemId": id,
		"displayText":   text,
		"modifiedUtc":   modified.Format(time.RFC3339Nano),
	}
}

func (e *testEnv) seed(t *testing.T, recs ...models.Record) {
	t.Helper()
	for _, rec := range recs {
		if len(rec.Payload) == 0 {
			rec.Payload = json.RawMessage(`{}`)
		}
		require.NoError(t, e.repos.Entities.InsertRecord(e.ctx, rec))
	}
}

func (e *testEnv) record(t *testing.T, kind models.EntityKind, id string) *models.Record {
	t.Helper()
	rec, err := e.repos.Entities.FindRecord(e.ctx, kind, id)
	require.NoError(t, err)
	return rec
}
