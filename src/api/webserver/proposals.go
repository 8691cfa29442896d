package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/treasury-gov/src/api/governance"
)

type Proposals struct {
	svc *governance.Service
}

func NewProposals(svc *governance.Service) Proposals {
	return Proposals{svc: svc}
}

func (p Proposals) Create(c *gin.Context) {
	var req struct {
		Kind        string `json:"kind" binding:"required,oneof=transfer_funds update_parameter generic"`
		Title       string `json:"title" binding:"required,max=255"`
		Description string `json:"description"`
		Payload     string `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	id, err := p.svc.CreateProposal(c, c.GetString("addr"), req.Kind, req.Title, req.Description, req.Payload)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (p Proposals) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}
	prop, err := p.svc.GetProposal(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, prop)
}

func (p Proposals) ListActive(c *gin.Context) {
	props, err := p.svc.ListActive()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

func (p Proposals) Tally(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}
	tally, err := p.svc.GetTally(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tally)
}

func (p Proposals) GetVote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}
	vote, err := p.svc.GetVote(id, c.Param("addr"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vote)
}

// Execute triggers the proposal's action. Any authenticated caller may
// trigger it; eligibility is purely time- and status-gated.
func (p Proposals) Execute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}
	if err := p.svc.Execute(c, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (p Proposals) Stats(c *gin.Context) {
	stats, err := p.svc.Stats()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
