package provider

import (
	"github.com/anta-store/anta-api/internal/authz"
	"github.com/anta-store/anta-api/internal/cache"
	"github.com/anta-store/anta-api/internal/config"
	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/localstore"
	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/queue"
	"github.com/anta-store/anta-api/internal/repository"
	"github.com/anta-store/anta-api/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	LocalStore  *localstore.Store

	// Repositories
	AdminRepo     repository.AdminRepository
	UserRepo      repository.UserRepository
	ProductRepo   *repository.GormProductRepository
	CategoryRepo  repository.CategoryRepository
	OrderRepo     *repository.GormOrderRepository
	ReviewRepo    *repository.GormReviewRepository
	CartRepo      repository.CartRepository
	WishlistRepo  repository.WishlistRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	UserAuthService  *service.UserAuthService
	CaptchaService   *service.CaptchaService
	ProductService   *service.ProductService
	CategoryService  *service.CategoryService
	CartService      *service.CartService
	CheckoutService  *service.CheckoutService
	OrderService     *service.OrderService
	ReviewService    *service.ReviewService
	WishlistService  *service.WishlistService
	OrderNoteService *service.OrderNoteService
	DashboardService *service.DashboardService
}

// NewContainer builds the container. Cart, wishlist and note storage follow
// the storage driver: "db" keeps them relational, "local" runs everything
// off the file-backed store (demo mode).
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initLocalStore()
	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) localDriver() bool {
	return c.Config.Storage.Driver == constants.StorageDriverLocal
}

// initLocalStore opens the file store when the local driver is selected, or
// when the note store needs a fallback because redis is off.
func (c *Container) initLocalStore() {
	if !c.localDriver() && cache.Enabled() {
		return
	}
	store, err := localstore.New(c.Config.Storage.LocalDir)
	if err != nil {
		logger.Errorw("provider_init_localstore_failed", "dir", c.Config.Storage.LocalDir, "error", err)
		panic(err)
	}
	c.LocalStore = store
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)

	if c.localDriver() {
		c.CartRepo = repository.NewLocalCartRepository(c.LocalStore)
		c.WishlistRepo = repository.NewLocalWishlistRepository(c.LocalStore)
	} else {
		c.CartRepo = repository.NewCartRepository(db)
		c.WishlistRepo = repository.NewWishlistRepository(db)
	}
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := authz.Bootstrap(c.AuthzService); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	var noteStore service.NoteStore
	if !c.localDriver() && cache.Enabled() {
		noteStore = service.NewRedisNoteStore()
	} else {
		noteStore = service.NewLocalNoteStore(c.LocalStore)
	}
	c.OrderNoteService = service.NewOrderNoteService(noteStore, c.Config.Checkout.NoteDebounceMS)

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.OrderNoteService)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.OrderNoteService, c.Config.Checkout.ClearNoteOnCartClear)
	c.CheckoutService = service.NewCheckoutService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.OrderNoteService, c.QueueClient, c.Config.Checkout.LowStockThreshold)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.OrderRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.Config.Checkout.LowStockThreshold)
}

// Shutdown flushes pending state and closes external connections.
func (c *Container) Shutdown() {
	if c == nil {
		return
	}
	if c.OrderNoteService != nil {
		c.OrderNoteService.Flush()
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_queue_client_close_failed", "error", err)
		}
	}
}
