package httpserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BharadwajRachakonda/todo-backend/internal/service"
	"github.com/BharadwajRachakonda/todo-backend/internal/token"
)

// NewRouter assembles the gin engine with middleware and all routes.
func NewRouter(log *zap.Logger, tokens *token.Service, auth service.AuthService, colls service.CollectionService) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(log), Logging(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", userTokenHeader, collectionTokenHeader},
		MaxAge:       12 * time.Hour,
	}))

	authHandler := NewAuthHandler(auth)
	collHandler := NewCollectionHandler(colls)

	requireUser := RequireUser(tokens)
	requireCollection := RequireCollection(tokens)

	authAPI := r.Group("/api/authentication")
	authAPI.POST("/createuser", authHandler.CreateUser)
	authAPI.POST("/login", authHandler.Login)
	authAPI.POST("/getuser", requireUser, authHandler.GetUser)

	collAPI := r.Group("/api/collection", requireUser)
	collAPI.GET("/fetchallcollections", collHandler.FetchAll)
	collAPI.POST("/addcollection", collHandler.Add)
	collAPI.POST("/collectionlogin", collHandler.Login)
	collAPI.DELETE("/deletecollection", collHandler.Delete)

	// routes that target an established collection need both tokens
	target := collAPI.Group("/getcollection", requireCollection)
	target.POST("", collHandler.Get)
	target.POST("/addtodo", collHandler.AddTodo)
	target.POST("/updateaccess", collHandler.UpdateAccess)
	target.DELETE("/deletetodo", collHandler.DeleteTodo)

	return r
}
