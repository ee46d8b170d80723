package handler

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/api/v1"

// uuidParamMessage is reused by every handler that parses an id path segment.
const uuidParamMessage = "must be a valid uuid"
