package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/socialboard/socialboard-server/cmd/utils"
	"github.com/socialboard/socialboard-server/db"
	"github.com/socialboard/socialboard-server/log"
	"github.com/socialboard/socialboard-server/service/interaction"
	"github.com/socialboard/socialboard-server/service/post"
	"github.com/socialboard/socialboard-server/service/rules"
	"github.com/socialboard/socialboard-server/service/user"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := s.Router()

	log.Info.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, handlers.RecoveryHandler()(
		handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(utils.RequestID(router))))
}

// Router wires every entity handler onto a fresh mux router.
func (s *APIServer) Router() *mux.Router {
	router := mux.NewRouter()

	users := db.NewUserRepository(s.db)
	posts := db.NewPostRepository(s.db)
	interactions := db.NewInteractionRepository(s.db)
	engine := rules.New(users, posts, interactions)

	userHandler := user.NewHandler(users)
	userHandler.RegisterRoutes(router)

	postHandler := post.NewHandler(posts, interactions, engine)
	postHandler.RegisterRoutes(router)

	interactionHandler := interaction.NewHandler(interactions, engine)
	interactionHandler.RegisterRoutes(router)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Hello there! App is working correctly!"))
	}).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Sorry, this page doesn't exist!"))
	})

	return router
}
