package api

import (
	"net/http"

	"family-gifts/internal/middleware"
	"family-gifts/internal/repository"
	"family-gifts/internal/service"
	"family-gifts/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires repositories, services and handlers into the HTTP surface.
func NewRouter(m mailer.Mailer) *gin.Engine {
	userRepo := repository.NewUserRepository()
	familyRepo := repository.NewFamilyRepository()
	memberRepo := repository.NewFamilyMemberRepository()
	profileRepo := repository.NewProfileRepository()
	wishlistRepo := repository.NewWishlistRepository()
	groupRepo := repository.NewGiftGroupRepository()
	messageRepo := repository.NewMessageRepository()

	authHandler := NewAuthHandler(service.NewAuthService(userRepo, familyRepo, memberRepo))
	familyHandler := NewFamilyHandler(service.NewFamilyService(familyRepo, memberRepo, userRepo, m))
	wishlistHandler := NewWishlistHandler(service.NewWishlistService(wishlistRepo, memberRepo))
	groupHandler := NewGroupHandler(service.NewGiftGroupService(groupRepo, messageRepo, memberRepo))
	profileHandler := NewProfileHandler(service.NewProfileService(profileRepo, memberRepo))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.GinZapLogger())
	r.Use(middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	protected := r.Group("/api", middleware.AuthMiddleware())
	{
		protected.GET("/families", familyHandler.ListFamilies)
		protected.POST("/families", familyHandler.CreateFamily)
		protected.POST("/families/join", familyHandler.JoinFamily)
		protected.GET("/families/:familyId", familyHandler.GetFamily)
		protected.PATCH("/families/:familyId", familyHandler.UpdateFamily)
		protected.DELETE("/families/:familyId", familyHandler.DeleteFamily)
		protected.POST("/families/:familyId/invite", familyHandler.InviteByEmail)
		protected.DELETE("/families/:familyId/members/:memberId", familyHandler.RemoveMember)

		protected.GET("/wishlist", wishlistHandler.ListItems)
		protected.POST("/wishlist", wishlistHandler.CreateItem)
		protected.PATCH("/wishlist/:itemId", wishlistHandler.UpdateItem)
		protected.DELETE("/wishlist/:itemId", wishlistHandler.DeleteItem)
		protected.POST("/wishlist/:itemId/claim", wishlistHandler.ClaimItem)
		protected.DELETE("/wishlist/:itemId/claim", wishlistHandler.UnclaimItem)
		protected.POST("/wishlist/:itemId/purchase", wishlistHandler.MarkPurchased)

		protected.GET("/groups", groupHandler.ListGroups)
		protected.POST("/groups", groupHandler.CreateGroup)
		protected.GET("/groups/:groupId", groupHandler.GetGroup)
		protected.PATCH("/groups/:groupId", groupHandler.UpdateGroup)
		protected.DELETE("/groups/:groupId", groupHandler.DeleteGroup)
		protected.POST("/groups/:groupId/contribute", groupHandler.Contribute)
		protected.GET("/groups/:groupId/messages", groupHandler.ListMessages)
		protected.POST("/groups/:groupId/messages", groupHandler.PostMessage)

		protected.GET("/profiles", profileHandler.GetProfile)
		protected.POST("/profiles", profileHandler.UpsertProfile)
	}

	return r
}
