package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"filevault/internal/api/http/handler"
	"filevault/internal/api/http/middleware"
	"filevault/internal/api/http/response"
	"filevault/internal/logger"
	"filevault/internal/model"
	"filevault/internal/service"
)

// Router wires handlers and middleware into the HTTP route table.
type Router struct {
	authService *service.Auth
	fileService *service.File
	tokens      model.TokenManager
	users       model.UserStore
	sessions    model.SessionStore
	ctxMgr      model.ContextManager
	logger      *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	fileService *service.File,
	tokens model.TokenManager,
	users model.UserStore,
	sessions model.SessionStore,
	ctxMgr model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService: authService,
		fileService: fileService,
		tokens:      tokens,
		users:       users,
		sessions:    sessions,
		ctxMgr:      ctxMgr,
		logger:      logger,
	}
}

// Register builds the route table with all middleware attached.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.authService, r.ctxMgr, r.logger)
	fileHandler := handler.NewFile(r.fileService, r.ctxMgr, r.logger)
	rootHandler := handler.NewRoot(r.ctxMgr)

	logging := middleware.NewLogging(r.logger)
	expiry := middleware.NewExpiryWarning(r.tokens, "/signup", "/signin", "/signin/new_token")
	authenticate := middleware.NewAuthenticate(r.tokens, r.users, r.sessions, r.ctxMgr, r.logger)

	m := mux.NewRouter()
	m.Use(logging.Handle, expiry.Handle)

	m.Handle("/", authenticate.HandleOptional(http.HandlerFunc(rootHandler.Info))).Methods(http.MethodGet)

	m.HandleFunc("/signup", authHandler.SignUp).Methods(http.MethodPost)
	m.HandleFunc("/signin", authHandler.SignIn).Methods(http.MethodPost)
	m.HandleFunc("/signin/new_token", authHandler.Refresh).Methods(http.MethodPost)

	m.Handle("/info", authenticate.Handle(http.HandlerFunc(userHandler.Info))).Methods(http.MethodGet)
	m.Handle("/logout", authenticate.Handle(http.HandlerFunc(userHandler.Logout))).Methods(http.MethodGet)
	m.Handle("/logout/all", authenticate.Handle(http.HandlerFunc(userHandler.LogoutAllDevices))).Methods(http.MethodGet)

	file := m.PathPrefix("/file").Subrouter()
	file.Use(authenticate.Handle)
	file.HandleFunc("/upload", fileHandler.Upload).Methods(http.MethodPost)
	file.HandleFunc("/list", fileHandler.List).Methods(http.MethodGet)
	file.HandleFunc("/download/{id}", fileHandler.Download).Methods(http.MethodGet)
	file.HandleFunc("/update/{id}", fileHandler.Update).Methods(http.MethodPut)
	file.HandleFunc("/delete/{id}", fileHandler.Delete).Methods(http.MethodDelete)
	file.HandleFunc("/{id}", fileHandler.Get).Methods(http.MethodGet)

	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.WriteError(w, http.StatusNotFound, "route not found", req.Method+" "+req.URL.Path)
	})

	return m
}
