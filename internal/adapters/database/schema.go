package database

// Schema creates the care plan tables when they do not exist yet. List
// columns are Postgres text arrays.
const Schema = `
CREATE TABLE IF NOT EXISTS care_plans (
	id                    TEXT PRIMARY KEY,
	name                  TEXT NOT NULL,
	description           TEXT NOT NULL DEFAULT '',
	duration_days         INTEGER NOT NULL CHECK (duration_days >= 1),
	overall_score         INTEGER NOT NULL DEFAULT 0,
	step_count            INTEGER NOT NULL DEFAULT 0,
	avg_dependency_depth  DOUBLE PRECISION NOT NULL DEFAULT 0,
	concurrent_activities INTEGER NOT NULL DEFAULT 0,
	tags                  TEXT[] NOT NULL DEFAULT '{}',
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS care_steps (
	id                TEXT PRIMARY KEY,
	care_plan_id      TEXT NOT NULL REFERENCES care_plans(id) ON DELETE CASCADE,
	description       TEXT NOT NULL,
	medical_context   TEXT NOT NULL DEFAULT '',
	frequency         TEXT NOT NULL,
	time_of_day       TEXT[] NOT NULL DEFAULT '{}',
	duration_minutes  INTEGER,
	start_day         INTEGER NOT NULL CHECK (start_day >= 1),
	end_day           INTEGER NOT NULL CHECK (end_day >= start_day),
	category          TEXT NOT NULL,
	instructions      TEXT NOT NULL DEFAULT '',
	dependencies      TEXT[] NOT NULL DEFAULT '{}',
	risk_level        TEXT NOT NULL,
	complexity_score  INTEGER NOT NULL DEFAULT 0,
	estimated_time    INTEGER NOT NULL DEFAULT 0,
	required_supplies TEXT[] NOT NULL DEFAULT '{}',
	warning_flags     TEXT[] NOT NULL DEFAULT '{}',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_care_steps_plan ON care_steps (care_plan_id, start_day);

CREATE TABLE IF NOT EXISTS dependencies (
	id               TEXT PRIMARY KEY,
	source_step_id   TEXT NOT NULL,
	target_step_id   TEXT NOT NULL,
	dependency_type  TEXT NOT NULL,
	explanation      TEXT NOT NULL DEFAULT '',
	criticality      TEXT NOT NULL,
	min_hours_before INTEGER,
	max_hours_before INTEGER,
	care_plan_id     TEXT NOT NULL REFERENCES care_plans(id) ON DELETE CASCADE,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_dependencies_plan ON dependencies (care_plan_id);
CREATE INDEX IF NOT EXISTS idx_dependencies_source ON dependencies (source_step_id);
CREATE INDEX IF NOT EXISTS idx_dependencies_target ON dependencies (target_step_id);

CREATE TABLE IF NOT EXISTS risk_metadata (
	id                      TEXT PRIMARY KEY,
	step_id                 TEXT NOT NULL UNIQUE REFERENCES care_steps(id) ON DELETE CASCADE,
	risk_type               TEXT NOT NULL DEFAULT '',
	consequence_description TEXT NOT NULL DEFAULT '',
	mitigation_guidance     TEXT NOT NULL DEFAULT '',
	disclaimer              TEXT NOT NULL DEFAULT '',
	adherence_importance    INTEGER NOT NULL DEFAULT 0,
	consequence_severity    INTEGER NOT NULL DEFAULT 0,
	reversibility           TEXT NOT NULL DEFAULT '',
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at              TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// ResetStatement removes all care plan data
const ResetStatement = `TRUNCATE risk_metadata, dependencies, care_steps, care_plans`
