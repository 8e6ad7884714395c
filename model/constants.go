package model

// SceneTimeFormat is the non-standard datetime format the upstream catalog
// uses: RFC3339Nano precision without an actual zone offset
const SceneTimeFormat = "2006-01-02T15:04:05.999999999"
