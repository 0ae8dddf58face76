package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/anthonyjpesce/calaccess-processed/models"
	"github.com/anthonyjpesce/calaccess-processed/pkg/form460"
)

// setupRoutes exposes the two collaborator surfaces of the schema: open read
// endpoints for the query/reporting layer, and JWT-protected write endpoints
// for the ingestion pipeline. Every schedule family gets the same six routes,
// registered generically.
func setupRoutes(r *gin.Engine) {
	r.POST("/login", loginHandler)

	r.GET("/filings/:filing_id", getFilingHandler)
	r.GET("/filings/:filing_id/versions", listVersionsHandler)
	r.GET("/filings/:filing_id/versions/:amend_id", getVersionHandler)

	w := r.Group("")
	w.Use(jwtAuthMiddleware())
	w.POST("/filings", registerFilingHandler)
	w.POST("/filings/:filing_id/versions", registerAmendmentHandler)
	w.DELETE("/filings/:filing_id", deleteFilingHandler)
	w.DELETE("/filings/:filing_id/versions/:amend_id", deleteVersionHandler)

	scheduleRoutes[models.Form460ScheduleAItem, models.Form460ScheduleAItemVersion](r, w, "schedule-a")
	scheduleRoutes[models.Form460ScheduleCItem, models.Form460ScheduleCItemVersion](r, w, "schedule-c")
	scheduleRoutes[models.Form460ScheduleDItem, models.Form460ScheduleDItemVersion](r, w, "schedule-d")
	scheduleRoutes[models.Form460ScheduleEItem, models.Form460ScheduleEItemVersion](r, w, "schedule-e")
	scheduleRoutes[models.Form460ScheduleESubItem, models.Form460ScheduleESubItemVersion](r, w, "schedule-e-sub")
	scheduleRoutes[models.Form460ScheduleGItem, models.Form460ScheduleGItemVersion](r, w, "schedule-g")
	scheduleRoutes[models.Form460ScheduleIItem, models.Form460ScheduleIItemVersion](r, w, "schedule-i")
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		token, err := jwt.Parse(authHeader[7:], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Authenticate(req.Username, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := issueToken(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token signing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func registerFilingHandler(c *gin.Context) {
	var f models.Form460Filing
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := filings.RegisterFiling(&f); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func registerAmendmentHandler(c *gin.Context) {
	filingID, ok := intParam(c, "filing_id")
	if !ok {
		return
	}
	var v models.Form460FilingVersion
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v.FilingID = &filingID
	if err := filings.RegisterAmendment(&v); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func getFilingHandler(c *gin.Context) {
	filingID, ok := intParam(c, "filing_id")
	if !ok {
		return
	}
	f, err := filings.Filing(filingID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func listVersionsHandler(c *gin.Context) {
	filingID, ok := intParam(c, "filing_id")
	if !ok {
		return
	}
	vs, err := filings.Versions(filingID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, vs)
}

func getVersionHandler(c *gin.Context) {
	v, ok := versionFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v)
}

func deleteFilingHandler(c *gin.Context) {
	filingID, ok := intParam(c, "filing_id")
	if !ok {
		return
	}
	if err := filings.DeleteFiling(filingID); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func deleteVersionHandler(c *gin.Context) {
	filingID, ok := intParam(c, "filing_id")
	if !ok {
		return
	}
	amendID, ok := intParam(c, "amend_id")
	if !ok {
		return
	}
	if err := filings.DeleteVersion(filingID, amendID); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// scheduleRoutes registers the uniform six-route surface of one schedule
// family: attach/list/get against the current filing and against one archived
// version. T is the current record type, V its version counterpart.
func scheduleRoutes[T any, V any, PT interface {
	*T
	models.CurrentItem
}, PV interface {
	*V
	models.VersionItem
}](read gin.IRoutes, write gin.IRoutes, name string) {
	write.POST("/filings/:filing_id/"+name, attachCurrentHandler[T, PT]())
	read.GET("/filings/:filing_id/"+name, listCurrentHandler[T]())
	read.GET("/filings/:filing_id/"+name+"/:line_item", getCurrentHandler[T]())
	write.POST("/filings/:filing_id/versions/:amend_id/"+name, attachVersionHandler[V, PV]())
	read.GET("/filings/:filing_id/versions/:amend_id/"+name, listVersionItemsHandler[V]())
	read.GET("/filings/:filing_id/versions/:amend_id/"+name+"/:line_item", getVersionItemHandler[V]())
}

func attachCurrentHandler[T any, PT interface {
	*T
	models.CurrentItem
}]() gin.HandlerFunc {
	return func(c *gin.Context) {
		filingID, ok := intParam(c, "filing_id")
		if !ok {
			return
		}
		item := PT(new(T))
		if err := c.ShouldBindJSON(item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item.SetParent(filingID)
		if err := filings.AttachCurrentItem(item); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func attachVersionHandler[V any, PV interface {
	*V
	models.VersionItem
}]() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := versionFromPath(c)
		if !ok {
			return
		}
		item := PV(new(V))
		if err := c.ShouldBindJSON(item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item.SetParentVersion(v.ID)
		if err := filings.AttachVersionItem(item); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func listCurrentHandler[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		filingID, ok := intParam(c, "filing_id")
		if !ok {
			return
		}
		items, err := form460.CurrentItems[T](filings, filingID)
		if err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func getCurrentHandler[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		filingID, ok := intParam(c, "filing_id")
		if !ok {
			return
		}
		lineItem, ok := intParam(c, "line_item")
		if !ok {
			return
		}
		item, err := form460.CurrentItemByLine[T](filings, filingID, lineItem)
		if err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func listVersionItemsHandler[V any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := versionFromPath(c)
		if !ok {
			return
		}
		items, err := form460.VersionItems[V](filings, v.ID)
		if err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func getVersionItemHandler[V any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := versionFromPath(c)
		if !ok {
			return
		}
		lineItem, ok := intParam(c, "line_item")
		if !ok {
			return
		}
		item, err := form460.VersionItemByLine[V](filings, v.ID, lineItem)
		if err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// versionFromPath resolves :filing_id/:amend_id to the archived version row.
func versionFromPath(c *gin.Context) (*models.Form460FilingVersion, bool) {
	filingID, ok := intParam(c, "filing_id")
	if !ok {
		return nil, false
	}
	amendID, ok := intParam(c, "amend_id")
	if !ok {
		return nil, false
	}
	v, err := filings.Version(filingID, amendID)
	if err != nil {
		writeStoreError(c, err)
		return nil, false
	}
	return v, true
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

func writeStoreError(c *gin.Context, err error) {
	var mf *form460.MissingFieldError
	switch {
	case errors.As(err, &mf):
		c.JSON(http.StatusBadRequest, gin.H{"error": mf.Error()})
	case errors.Is(err, form460.ErrDuplicateFiling),
		errors.Is(err, form460.ErrDuplicateVersion),
		errors.Is(err, form460.ErrDuplicateLineItem):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, form460.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
	}
}
