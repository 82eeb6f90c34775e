package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Render executes an HTML template with the data every page needs
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = CurrentUser(c)
	data["Flash"] = CurrentFlash(c)
	data["Year"] = time.Now().Year()
	data["Path"] = c.Request.URL.Path
	if _, ok := data["Title"]; !ok {
		data["Title"] = "TalentBridge"
	}
	c.HTML(status, name, data)
}
