//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ogrenci-destek/destekai/internal/api/handlers"
	"github.com/ogrenci-destek/destekai/internal/chunker"
	"github.com/ogrenci-destek/destekai/internal/nlp"
	"github.com/ogrenci-destek/destekai/internal/repository"
	"github.com/ogrenci-destek/destekai/internal/server"
	"github.com/ogrenci-destek/destekai/internal/service"
	"github.com/ogrenci-destek/destekai/internal/storage"
	"github.com/ogrenci-destek/destekai/internal/testutil"
	"github.com/ogrenci-destek/destekai/internal/textindex"
)

const (
	adminUser     = "admin"
	adminPassword = "e2e-gizli"

	slidesKey = "documents/isletmede-mesleki-egitim.pptx"
	faqKey    = "documents/sss.docx"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	RustFSC      *testutil.RustFSContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	S3Client     *storage.S3Client
	Knowledge    *service.KnowledgeService
	HTTPClient   *http.Client
}

// SetupE2EEnv starts both containers, uploads the source documents into the
// bucket, and serves the full application against them.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	s3C := testutil.NewRustFSContainer(ctx, t)

	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        s3C.Endpoint(),
		Region:          "us-east-1",
		AccessKeyID:     "rustfsadmin",
		SecretAccessKey: "rustfsadmin",
		Bucket:          "destek-documents",
		UsePathStyle:    true,
	})
	if err != nil {
		t.Fatalf("failed to create S3 client: %v", err)
	}
	if err := s3Client.EnsureBucket(ctx); err != nil {
		t.Fatalf("failed to create bucket: %v", err)
	}

	uploadDocuments(ctx, t, s3Client)

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser, knowledge := startServer(ctx, t, pool, s3Client, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		RustFSC:      s3C,
		Pool:         pool,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		S3Client:     s3Client,
		Knowledge:    knowledge,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.RustFSC != nil {
		e.RustFSC.Terminate(e.Ctx)
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

func uploadDocuments(ctx context.Context, t *testing.T, client *storage.S3Client) {
	slides := testutil.BuildPPTX(t, map[int]string{
		2: "Devam zorunluluğu: öğrencinin toplam eğitim süresinin en az %90'ına katılması zorunludur. Mazeretsiz ardışık üç gün devamsızlık başarısızlık sayılır.",
		5: "Puantaj formu her ayın 1-7'si arasında işletme yetkilisi onayıyla teslim edilir. Formda günlük çalışma saatleri yer alır.",
	})
	if err := client.PutDocument(ctx, slidesKey, slides,
		"application/vnd.openxmlformats-officedocument.presentationml.presentation"); err != nil {
		t.Fatalf("failed to upload slides: %v", err)
	}

	faq := testutil.BuildDOCX(t, []string{
		"Soru: Ara rapor ne zaman teslim edilir? Cevap: Eğitim süresinin ortasında, genellikle altıncı ve sekizinci haftalar arasında teslim edilir ve danışman tarafından değerlendirilir.",
	})
	if err := client.PutDocument(ctx, faqKey, faq,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document"); err != nil {
		t.Fatalf("failed to upload faq: %v", err)
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request; admin toggles Basic auth.
func (e *E2ETestEnv) Get(path string, admin bool) (int, *APIResponse, error) {
	return e.doRequest(http.MethodGet, path, nil, admin)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body interface{}, admin bool) (int, *APIResponse, error) {
	return e.doRequest(http.MethodPost, path, body, admin)
}

// Patch performs a PATCH request
func (e *E2ETestEnv) Patch(path string, body interface{}, admin bool) (int, *APIResponse, error) {
	return e.doRequest(http.MethodPatch, path, body, admin)
}

// PutRaw performs a PUT request with an unencoded body, for document
// uploads.
func (e *E2ETestEnv) PutRaw(path string, body []byte, admin bool) (int, *APIResponse, error) {
	req, err := http.NewRequest(http.MethodPut, e.ServerURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if admin {
		req.SetBasicAuth(adminUser, adminPassword)
	}

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	return resp.StatusCode, &apiResp, nil
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}, admin bool) (int, *APIResponse, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, e.ServerURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.SetBasicAuth(adminUser, adminPassword)
	}

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	return resp.StatusCode, &apiResp, nil
}

// startServer wires the full application the way serve does and runs it on
// the given port.
func startServer(ctx context.Context, t *testing.T, pool *pgxpool.Pool, s3Client *storage.S3Client, port int) (string, func(), *service.KnowledgeService) {
	sessionRepo := repository.NewSessionRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	classifier := nlp.NewClassifier()
	classifier.Train()

	index := textindex.NewIndex()
	knowledgeSvc := service.NewKnowledgeService(index, chunker.DefaultConfig(),
		slidesKey, faqKey, t.TempDir()).WithDocumentStore(s3Client)
	if err := knowledgeSvc.Build(ctx, false); err != nil {
		t.Fatalf("failed to build knowledge index: %v", err)
	}

	chatSvc := service.NewChatService(sessionRepo, messageRepo, ticketRepo, knowledgeSvc, classifier, 0.65, 0.22)
	ticketSvc := service.NewTicketService(ticketRepo, messageRepo)

	router := server.NewRouter(server.RouterConfig{
		AdminPassword:    adminPassword,
		ChatHandler:      handlers.NewChatHandler(chatSvc),
		KnowledgeHandler: handlers.NewKnowledgeHandler(knowledgeSvc),
		AdminHandler:     handlers.NewAdminHandler(ticketSvc, knowledgeSvc),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}, knowledgeSvc
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
