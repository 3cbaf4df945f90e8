package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/log"
	"github.com/silinternational/prudence-api/models"
)

func userCreated(e events.Event) {
	if e.Kind != domain.EventApiUserCreated {
		return
	}

	defer panicRecover(e.Kind)

	var user models.User
	if err := findObject(e.Payload, &user, e.Kind); err != nil {
		return
	}

	log.Infof("new %s user registered: %s <%s>", user.Role, user.Username, user.Email)
}
