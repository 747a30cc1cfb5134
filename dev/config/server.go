package config

// SERVER_YML is the config used with --dev. It keeps the sqlite file under ./dev
// and imports from the clients API every 30 minutes.
const SERVER_YML = `
listener:
  port: 3001

database:
  driver: sqlite
  dsn:
  dir: "./dev"

cors:
  allowedOrigins:
    - "*"

seed:
  url: "https://3ji5haxzr9.execute-api.us-east-1.amazonaws.com/dev/caseYolo"
  timeout: 30s
  schedule: "*/30 * * * *"

cron:
  timeZone: "America/Sao_Paulo"

client:
  baseURL: "http://localhost:3001"
  timeout: 10s
`
