package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"tourneypoker-server/internal/config"
	"tourneypoker-server/pkg/db"
	"tourneypoker-server/pkg/event"
	"tourneypoker-server/pkg/room"
	"tourneypoker-server/pkg/tournament"
)

// ListCmd prints every stored tournament
type ListCmd struct{}

// Run lists the tournaments in the postgres store
func (l *ListCmd) Run() error {
	if config.Instance().Store != config.StorePostgres {
		return errors.New("tournaments are only listed from the postgres store")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	docs, err := db.NewPostgresStore(db.Instance()).List(ctx, room.Kind)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSTATUS\tLEVEL\tREMAINING\tVERSION\tUPDATED")
	for _, doc := range docs {
		t, err := tournament.Restore(logger, event.Discard, nil, doc.Data)
		if err != nil {
			_, _ = fmt.Fprintf(w, "%s\t-\t%v\t\t\t%d\t%s\n", doc.ID, err, doc.Version, doc.Updated.Format(time.RFC3339))
			continue
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			doc.ID, t.Config().Name, t.Status(), t.Level(), t.ActivePlayerCount(), doc.Version, doc.Updated.Format(time.RFC3339))
	}

	return w.Flush()
}
