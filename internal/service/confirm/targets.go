package confirm

import (
	"context"

	"github.com/phrazzld/studygroup-api/internal/service"
)

// TopicTarget deletes topics through study. Any member may delete a topic;
// the check only makes sure it exists in the group.
func TopicTarget(study service.StudyService) Target {
	return Target{
		Check: func(ctx context.Context, p Pending) error {
			_, err := study.GetTopic(ctx, p.GroupID, p.TargetID)
			return err
		},
		Delete: func(ctx context.Context, p Pending) error {
			return study.DeleteTopic(ctx, p.GroupID, p.TargetID)
		},
	}
}

// EventTarget deletes events through schedule. The deletion policy is
// checked both when the delete is requested and again on confirmation,
// since the event may have started in between.
func EventTarget(schedule service.EventService) Target {
	return Target{
		Check: func(ctx context.Context, p Pending) error {
			return schedule.CanDeleteEvent(ctx, p.GroupID, p.TargetID, p.RequesterID)
		},
		Delete: func(ctx context.Context, p Pending) error {
			return schedule.DeleteEvent(ctx, p.GroupID, p.TargetID, p.RequesterID)
		},
	}
}

// RegisterDefaults installs TopicTarget and EventTarget on g and makes
// groups the gate's access checker.
func RegisterDefaults(
	g *Gate,
	groups service.GroupService,
	study service.StudyService,
	schedule service.EventService,
) {
	g.SetAccessChecker(groups)
	g.Register(KindTopic, TopicTarget(study))
	g.Register(KindEvent, EventTarget(schedule))
}
