package app

import (
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	OAuthAccount repos.OAuthAccountRepo
	Domain       repos.DomainRepo
	NodeType     repos.NodeTypeRepo
	EdgeType     repos.EdgeTypeRepo
	Node         repos.NodeRepo
	Edge         repos.EdgeRepo
	Rating       repos.RatingRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		OAuthAccount: repos.NewOAuthAccountRepo(db, log),
		Domain:       repos.NewDomainRepo(db, log),
		NodeType:     repos.NewNodeTypeRepo(db, log),
		EdgeType:     repos.NewEdgeTypeRepo(db, log),
		Node:         repos.NewNodeRepo(db, log),
		Edge:         repos.NewEdgeRepo(db, log),
		Rating:       repos.NewRatingRepo(db, log),
	}
}
