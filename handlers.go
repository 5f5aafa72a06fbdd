package guidemate

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guidemate/guidemate/geo"
	"github.com/guidemate/guidemate/guidance"
)

type coordinateDTO struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

func (c coordinateDTO) toCoordinate() (geo.Coordinate, bool) {
	if *c.Lat < -90 || *c.Lat > 90 || *c.Lon < -180 || *c.Lon > 180 {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lat: *c.Lat, Lon: *c.Lon}, true
}

type createRouteDTO struct {
	UserID           string         `json:"userId" binding:"required"`
	Start            coordinateDTO  `json:"start" binding:"required"`
	Destination      string         `json:"destination"`
	DestinationCoord *coordinateDTO `json:"destinationCoord"`
}

type errorDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, err error) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		c.JSON(svcErr.Kind.HTTPStatus(), errorDTO{Kind: string(svcErr.Kind), Message: svcErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, errorDTO{Kind: string(KindInternal), Message: err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorDTO{Kind: string(KindBadRequest), Message: msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"activeSessions": s.svc.Store().Len(),
	})
}

func (s *Server) handleCreateRoute(c *gin.Context) {
	var body createRouteDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	start, ok := body.Start.toCoordinate()
	if !ok {
		badRequest(c, "start coordinate out of range")
		return
	}

	req := RouteRequest{UserID: body.UserID, Start: start, Destination: body.Destination}
	if body.DestinationCoord != nil {
		dest, ok := body.DestinationCoord.toCoordinate()
		if !ok {
			badRequest(c, "destination coordinate out of range")
			return
		}
		req.DestinationCoord = &dest
	}

	planned, err := s.svc.PlanRoute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"routeId":     planned.RouteID,
		"destination": planned.DestinationName,
		"legs":        planned.Legs,
		"message":     FirstInstruction(planned.Legs),
	})
}

func (s *Server) handleGetSession(c *gin.Context) {
	entry := s.svc.Store().Get(c.Param("user"))
	if entry == nil {
		c.JSON(http.StatusNotFound, errorDTO{Kind: string(KindNoActiveRoute), Message: "no active route for user"})
		return
	}
	resp := gin.H{
		"routeId":      entry.RouteID,
		"destination":  entry.DestinationName,
		"currentLeg":   entry.Session.CurrentLegIndex(),
		"totalLegs":    len(entry.Session.Route()),
		"lastLocation": entry.Session.LastKnownLocation(),
	}
	if place, ok := s.svc.LocatePlace(c.Request.Context(), entry.Session.LastKnownLocation()); ok {
		resp["place"] = gin.H{
			"name":     place.Name,
			"street":   place.Street,
			"city":     place.City,
			"postcode": place.Postcode,
			"country":  place.Country,
		}
		if desc := DescribePlace(place); desc != "" {
			resp["placeDescription"] = desc
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleLocationUpdate(c *gin.Context) {
	var body coordinateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid location: "+err.Error())
		return
	}
	loc, ok := body.toCoordinate()
	if !ok {
		badRequest(c, "location coordinate out of range")
		return
	}

	ev, entry, err := s.svc.Store().UpdateLocation(c.Param("user"), loc)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := gin.H{
		"kind":     ev.Kind.String(),
		"legIndex": ev.LegIndex,
	}
	if msg := RenderEvent(ev, entry); msg != "" {
		resp["message"] = msg
	}
	if ev.Kind == guidance.EventCheckpointReached {
		resp["street"] = ev.Street
		resp["distanceMeters"] = ev.DistanceMeters
		resp["turn"] = TurnPhrase(ev.Turn)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCancel(c *gin.Context) {
	if !s.svc.Store().Cancel(c.Param("user")) {
		c.JSON(http.StatusNotFound, errorDTO{Kind: string(KindNoActiveRoute), Message: "no active route for user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
