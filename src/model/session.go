package model

// Checkpoint keys
// checkpoint:{thread_id}          // latest checkpoint of a session (JSON)
// thread ids are "ui-" + uuid, one per session run
const CheckpointKeyPrefix = "checkpoint:"
