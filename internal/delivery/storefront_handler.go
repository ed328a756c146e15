package delivery

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/session"
)

const sessionCookie = "storefront_session"

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate parses the storefront page for use with gin's HTML renderer.
func PageTemplate() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type HandlerOptions struct {
	ClearBasketOnOrder bool
	SessionTTL         time.Duration
}

type StorefrontHandler struct {
	sessions  *session.Registry
	loader    domain.PageLoader
	submitter domain.OrderSubmitter
	opts      HandlerOptions
	loadCtx   context.Context
	log       *logrus.Logger
}

// NewStorefrontHandler wires the page handlers. loadCtx bounds the background
// page loads and should be cancelled on shutdown.
func NewStorefrontHandler(
	loadCtx context.Context,
	sessions *session.Registry,
	loader domain.PageLoader,
	submitter domain.OrderSubmitter,
	opts HandlerOptions,
	logger *logrus.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		sessions:  sessions,
		loader:    loader,
		submitter: submitter,
		opts:      opts,
		loadCtx:   loadCtx,
		log:       logger,
	}
}

func (h *StorefrontHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.ShowPage)
	router.GET("/reload", h.Reload)
	router.GET("/health", h.Health)

	basket := router.Group("/basket")
	{
		basket.POST("/:id/add", h.AddToBasket)
		basket.POST("/:id/remove", h.RemoveFromBasket)
	}
	router.POST("/orders", h.Buy)

	api := router.Group("/api")
	{
		api.GET("/basket", h.GetBasket)
		api.POST("/orders", h.CreateOrder)
	}
}

type productRow struct {
	ID       int
	Name     string
	Price    string
	InBasket bool
}

type orderRow struct {
	CustomerName string
	TotalPrice   string
}

type pageData struct {
	Loading      bool
	Error        string
	Products     []productRow
	Basket       []domain.BasketLine
	Orders       []orderRow
	CustomerName string
	Notices      []domain.Notice
}

func (h *StorefrontHandler) ShowPage(c *gin.Context) {
	sess := h.currentSession(c)
	if sess.Mount() {
		h.log.Infof("Handler: Mounting page for session %s", sess.ID)
		go h.loader.Load(h.loadCtx, sess)
	}

	view := sess.Render()
	data := pageData{
		Loading:      view.Loading,
		Error:        view.Error,
		Basket:       view.Basket,
		CustomerName: view.CustomerName,
		Notices:      view.Notices,
	}
	inBasket := make(map[int]bool, len(view.Basket))
	for _, line := range view.Basket {
		inBasket[line.ID] = line.Quantity >= 1
	}
	for _, p := range view.Products {
		data.Products = append(data.Products, productRow{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price.StringFixed(2),
			InBasket: inBasket[p.ID],
		})
	}
	for _, o := range view.Orders {
		data.Orders = append(data.Orders, orderRow{
			CustomerName: o.CustomerName,
			TotalPrice:   o.TotalPrice.StringFixed(2),
		})
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "page.html", data)
}

func (h *StorefrontHandler) Reload(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		h.sessions.Drop(id)
		h.log.Infof("Handler: Session %s dropped on reload", id)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *StorefrontHandler) Health(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Storefront is running", gin.H{"sessions": h.sessions.Len()})
}

func (h *StorefrontHandler) AddToBasket(c *gin.Context) {
	sess, product, ok := h.basketTarget(c)
	if !ok {
		return
	}
	sess.Basket.Add(product)
	h.log.Debugf("Handler: Session %s added product %d (now %d)", sess.ID, product.ID, sess.Basket.Quantity(product.ID))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *StorefrontHandler) RemoveFromBasket(c *gin.Context) {
	sess, product, ok := h.basketTarget(c)
	if !ok {
		return
	}
	sess.Basket.Remove(product)
	h.log.Debugf("Handler: Session %s removed product %d (now %d)", sess.ID, product.ID, sess.Basket.Quantity(product.ID))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *StorefrontHandler) Buy(c *gin.Context) {
	sess, ok := h.existingSession(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	customerName := strings.TrimSpace(c.PostForm("customer_name"))
	if customerName != "" {
		sess.SetCustomerName(customerName)
	}

	err := h.submit(c.Request.Context(), sess, customerName)
	sess.Notify(noticeForSubmit(err))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *StorefrontHandler) GetBasket(c *gin.Context) {
	sess, ok := h.existingSession(c)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "No active session")
		return
	}
	SuccessResponse(c, http.StatusOK, "Basket retrieved successfully", sess.Basket.Snapshot())
}

func (h *StorefrontHandler) CreateOrder(c *gin.Context) {
	sess, ok := h.existingSession(c)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "No active session")
		return
	}

	var requestBody struct {
		CustomerName string `json:"customer_name"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for create order (session %s): %v", sess.ID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.submit(c.Request.Context(), sess, requestBody.CustomerName); err != nil {
		ErrorResponse(c, mapErrorToStatus(err), noticeForSubmit(err).Message)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Order created successfully", nil)
}

func (h *StorefrontHandler) submit(ctx context.Context, sess *session.Session, customerName string) error {
	err := h.submitter.Submit(ctx, sess.Basket.Snapshot(), customerName)
	if err != nil {
		h.log.Warnf("Handler: Order for session %s not created: %v", sess.ID, err)
		return err
	}
	if h.opts.ClearBasketOnOrder {
		sess.Basket.Clear()
	}
	h.log.Infof("Handler: Order created for session %s", sess.ID)
	return nil
}

// basketTarget resolves the session and catalog product a basket intent refers
// to, writing an error response when either is missing.
func (h *StorefrontHandler) basketTarget(c *gin.Context) (*session.Session, domain.Product, bool) {
	sess, ok := h.existingSession(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return nil, domain.Product{}, false
	}

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Handler: Invalid product ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return nil, domain.Product{}, false
	}

	product, ok := sess.Product(id)
	if !ok {
		h.log.Warnf("Handler: Product %d is not in the catalog of session %s", id, sess.ID)
		ErrorResponse(c, http.StatusNotFound, "Product not found")
		return nil, domain.Product{}, false
	}
	return sess, product, true
}

// existingSession resumes the visitor's session and slides its cookie expiry
// along with the server-side idle timer.
func (h *StorefrontHandler) existingSession(c *gin.Context) (*session.Session, bool) {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	sess, ok := h.sessions.Get(id)
	if !ok {
		return nil, false
	}
	h.setSessionCookie(c, sess.ID)
	return sess, true
}

// currentSession resumes the visitor's session or starts a new one.
func (h *StorefrontHandler) currentSession(c *gin.Context) *session.Session {
	if sess, ok := h.existingSession(c); ok {
		return sess
	}
	sess := h.sessions.Create()
	h.setSessionCookie(c, sess.ID)
	return sess
}

func (h *StorefrontHandler) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(h.opts.SessionTTL.Seconds()), "/", "", false, true)
}
