package transcribe

const engineScript = `
import argparse
import json
import sys

from faster_whisper import WhisperModel


def main():
    p = argparse.ArgumentParser()
    p.add_argument("--audio", required=True)
    p.add_argument("--model", required=True)
    p.add_argument("--device", default="auto")
    p.add_argument("--compute-type", default="default")
    p.add_argument("--device-index", type=int, default=0)
    p.add_argument("--num-workers", type=int, default=1)
    p.add_argument("--cpu-threads", type=int, default=0)
    p.add_argument("--language", default=None)
    p.add_argument("--beam-size", type=int, default=5)
    p.add_argument("--vad-filter", action="store_true")
    p.add_argument("--word-timestamps", action="store_true")
    args = p.parse_args()

    model = WhisperModel(
        args.model,
        device=args.device,
        compute_type=args.compute_type,
        device_index=args.device_index,
        num_workers=args.num_workers,
        cpu_threads=args.cpu_threads,
    )

    segments, info = model.transcribe(
        args.audio,
        language=args.language or None,
        beam_size=args.beam_size,
        vad_filter=args.vad_filter,
        word_timestamps=args.word_timestamps,
    )

    payload = {
        "language": info.language,
        "language_probability": info.language_probability,
        "duration": info.duration,
        "segments": [
            {"start": seg.start, "end": seg.end, "text": seg.text}
            for seg in segments
        ],
    }
    json.dump(payload, sys.stdout)


if __name__ == "__main__":
    main()
`
