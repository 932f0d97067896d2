package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/park285/weather-assistant-go/internal/httperror"
)

// Coordinates 는 lat/lon 쿼리 파라미터다.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ParseCoordinates 는 lat/lon 쿼리를 파싱한다.
// 둘 중 하나라도 비면 present=false, 숫자가 아니면 INVALID_INPUT 오류를 반환한다.
func ParseCoordinates(c *gin.Context) (coords Coordinates, present bool, err error) {
	rawLat := strings.TrimSpace(c.Query("lat"))
	rawLon := strings.TrimSpace(c.Query("lon"))
	if rawLat == "" || rawLon == "" {
		return Coordinates{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(rawLat, 64)
	lon, lonErr := strconv.ParseFloat(rawLon, 64)
	if latErr != nil || lonErr != nil {
		return Coordinates{}, true, httperror.NewInvalidInput("lat and lon must be numbers")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinates{}, true, httperror.NewInvalidInput("lat or lon out of range")
	}
	return Coordinates{Lat: lat, Lon: lon}, true, nil
}
