package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/treasury-gov/src/api/governance"
	"github.com/stake-plus/treasury-gov/src/api/types"
)

type Votes struct {
	svc *governance.Service
}

func NewVotes(svc *governance.Service) Votes { return Votes{svc: svc} }

var choiceMap = map[string]int16{
	"for":     types.ChoiceFor,
	"against": types.ChoiceAgainst,
	"abstain": types.ChoiceAbstain,
}

func (v Votes) Cast(c *gin.Context) {
	var req struct {
		ProposalID uint64 `json:"proposalId" binding:"required"`
		Choice     string `json:"choice" binding:"required,oneof=for against abstain"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if err := v.svc.CastVote(c, req.ProposalID, c.GetString("addr"), choiceMap[req.Choice]); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (v Votes) Summary(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}
	tally, err := v.svc.GetTally(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"for":     tally.For,
		"against": tally.Against,
		"abstain": tally.Abstain,
	})
}
