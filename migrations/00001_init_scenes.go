package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

//Up00001 creates the Sentinel-2 scene index table
func Up00001(tx *sql.Tx) error {
	// This code is executed when the migration is applied.

	err := addTables(tx)

	if err == nil {
		err = addIndexes(tx)
	}

	return err
}

//Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`
		DROP TABLE IF EXISTS public.scenes;
		`)
	return err
}

func addTables(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE public.scenes
		(
			product_id text COLLATE pg_catalog."default" NOT NULL,
			acquisition_date timestamp without time zone NOT NULL,
			cloud_cover real NOT NULL,
			mgrs_tile text COLLATE pg_catalog."default" NOT NULL,
			scene_url text COLLATE pg_catalog."default" NOT NULL,
			bounds geometry NOT NULL,
			CONSTRAINT "scenes_pk_productId" PRIMARY KEY (product_id)
		)
		WITH (
			OIDS = FALSE
		);
		`)

	return err
}

func addIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX idx_scenes_bounds
		ON public.scenes USING gist
		(bounds);

		CREATE INDEX idx_scenes_acquisition_date
		ON public.scenes (acquisition_date);
		`)

	return err
}
